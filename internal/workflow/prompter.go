package workflow

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyPrompter is the interactive terminal prompter used in production.
// Ctrl+C at any prompt maps to ErrCancelled.
type SurveyPrompter struct{}

func (SurveyPrompter) Select(message string, options []string, descriptions []string) (int, error) {
	var idx int
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if len(descriptions) == len(options) {
		prompt.Description = func(value string, index int) string {
			return descriptions[index]
		}
	}

	if err := survey.AskOne(prompt, &idx); err != nil {
		if err == terminal.InterruptErr {
			return 0, ErrCancelled
		}
		return 0, err
	}
	return idx, nil
}

func (SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}

	if err := survey.AskOne(prompt, &answer); err != nil {
		if err == terminal.InterruptErr {
			return "", ErrCancelled
		}
		return "", err
	}
	return answer, nil
}
