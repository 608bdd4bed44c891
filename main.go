package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ghp/internal/board"
	"ghp/internal/errors"
	"ghp/internal/gh"
	"ghp/internal/logger"
	"ghp/internal/render"
	"ghp/internal/usercfg"
	"ghp/internal/version"
	"ghp/internal/workflow"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var updateCheckCh <-chan version.UpdateCheckResult

var rootCmd = &cobra.Command{
	Use:   "ghp",
	Short: "Update GitHub Project item statuses from the terminal",
	Long: `ghp works against GitHub Projects (v2) through the gh CLI: pick an owner,
a project, an item, and a new status, and ghp applies the change.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)

		name := cmd.Name()
		if name != "update" && name != "version" {
			updateCheckCh = version.StartUpdateCheck()
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if updateCheckCh == nil {
			return
		}
		select {
		case result := <-updateCheckCh:
			if result.NewVersion != "" {
				fmt.Fprintf(os.Stderr, "\n\033[33mA new version of ghp is available: %s (current: %s)\033[0m\n", result.NewVersion, version.GetShortVersion())
				fmt.Fprintf(os.Stderr, "\033[33mRun 'ghp update' to upgrade.\033[0m\n")
			}
		case <-time.After(500 * time.Millisecond):
		}
	},
	Run: runGHP,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure ghp interactively",
	Long:  "Launch a setup wizard to configure organizations, the default owner, status options, and workspace project shortcuts",
	Run:   runSetup,
}

// boardCmd launches a TUI showing a project as a Kanban board
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open a project as a Kanban board",
	Long: `Open a GitHub project as an interactive Kanban board.

Controls:
  - Arrows / h j k l: Move selection
  - Tab / Shift+Tab, [ ]: Switch column
  - Enter: View item details
  - < / >: Move selected item one column left/right
  - r: Refresh
  - /: Filter
  - o: Open selected item in browser
  - q: Quit`,
	Example: "  ghp board\n  ghp board --owner acme --project 3\n  ghp board --owner acme --project 3 --export board.html",
	Run:     runBoard,
}

// projectCmd manages workspace project shortcuts
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage workspace project shortcuts",
	Long:  "Workspace projects are saved owner/project pairs that skip the owner and project pickers in the interactive flow",
}

var projectAddCmd = &cobra.Command{
	Use:   "add [owner]",
	Short: "Save a project as a workspace shortcut",
	Args:  cobra.MaximumNArgs(1),
	Run:   runProjectAdd,
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove workspace shortcuts",
	Run:   runProjectRemove,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspace shortcuts",
	Run:   runProjectList,
}

// configCmd provides config management subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ghp configuration",
	Long:  "Commands for managing ghp configuration files, migrations, and settings",
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate config file to current schema version",
	Long:  "Load the config file, apply any necessary schema migrations, and save it back to disk with the current schema version",
	Run:   runConfigMigrate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the path to the configuration file",
	Long:  "Display the path where ghp looks for its configuration file (XDG-compliant location)",
	Run:   runConfigPath,
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the current configuration",
	Long:  "Display the current effective configuration, including defaults and environment variable overlays",
	Run:   runConfigPrint,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  "Retrieve and display a specific configuration value. Keys: organizations, default_owner, default_project, status_options, schema_version",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value and save to file. Keys: default_owner, default_project, status_options. Use 'ghp setup' for organizations and shortcuts.",
	Args:  cobra.ExactArgs(2),
	Run:   runConfigSet,
}

var configDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration health",
	Long:  "Validate configuration file, check the gh CLI, and suggest fixes",
	Run:   runConfigDoctor,
}

// versionCmd displays version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display version, build information, and platform details for ghp",
	Run:   runVersion,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Self-update ghp to the latest release",
	Long:  "Check GitHub Releases for a newer version of ghp and replace the current binary.",
	Run:   runUpdate,
}

var (
	verbose bool

	boardOwnerFlag   string
	boardProjectFlag int
	boardExportFlag  string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	boardCmd.Flags().StringVarP(&boardOwnerFlag, "owner", "o", "", "Project owner (user or organization)")
	boardCmd.Flags().IntVarP(&boardProjectFlag, "project", "p", 0, "Project number")
	boardCmd.Flags().StringVar(&boardExportFlag, "export", "", "Write the board as static HTML to this file instead of opening the TUI")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	projectCmd.AddCommand(projectListCmd)

	configCmd.AddCommand(configMigrateCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configDoctorCmd)

	// Setup graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\n\033[93mOperation cancelled by user.\033[0m")
		os.Exit(0)
	}()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// requireGh verifies the gh CLI is usable before any remote work
func requireGh(ctx context.Context, client *gh.Client) {
	if !client.IsInstalled(ctx) {
		fmt.Fprintln(os.Stderr, errors.NewGhNotInstalledError(nil))
		os.Exit(1)
	}
	if !client.IsAuthenticated(ctx) {
		fmt.Fprintln(os.Stderr, errors.NewGhAuthError())
		os.Exit(1)
	}
}

func workflowOptions(config usercfg.Config) workflow.Options {
	return workflow.Options{
		Organizations:     config.Organizations,
		DefaultOwner:      config.DefaultOwner,
		DefaultProject:    config.DefaultProject,
		ShowOwnerPicker:   config.OwnerPickerEnabled(),
		StatusOptions:     config.StatusOptions,
		WorkspaceProjects: config.WorkspaceProjects,
	}
}

func runGHP(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	client := gh.NewClient()
	requireGh(ctx, client)

	config := usercfg.GetRuntimeConfig()
	session := workflow.NewSession(client, workflow.SurveyPrompter{}, workflowOptions(config), os.Stdout)

	if _, err := session.Run(ctx); err != nil {
		os.Exit(1)
	}
}

// resolveBoardTarget picks the owner and project for the board command from
// flags, config, and prompts, in that order.
func resolveBoardTarget(ctx context.Context, client *gh.Client, config usercfg.Config) (string, gh.Project, error) {
	owner := boardOwnerFlag
	if owner == "" {
		owner = config.DefaultOwner
	}
	if owner == "" {
		owners := usercfg.GetAvailableOwners()
		prompter := workflow.SurveyPrompter{}
		if len(owners) == 0 {
			var err error
			owner, err = prompter.Input("GitHub owner (user or organization):", "")
			if err != nil || owner == "" {
				return "", gh.Project{}, fmt.Errorf("no owner selected")
			}
		} else {
			idx, err := prompter.Select("Select an owner:", owners, nil)
			if err != nil {
				return "", gh.Project{}, err
			}
			owner = owners[idx]
		}
	}

	if boardProjectFlag != 0 {
		project, err := client.ViewProject(ctx, owner, boardProjectFlag)
		if err != nil {
			return "", gh.Project{}, err
		}
		return owner, project, nil
	}

	projects, err := client.ListProjects(ctx, owner)
	if err != nil {
		return "", gh.Project{}, err
	}
	if len(projects) == 0 {
		return "", gh.Project{}, fmt.Errorf("no projects found for %s", owner)
	}

	// A configured default project skips the picker
	if config.DefaultProject != "" {
		for _, p := range projects {
			if p.Title == config.DefaultProject {
				return owner, p, nil
			}
		}
	}
	if len(projects) == 1 {
		return owner, projects[0], nil
	}

	labels := make([]string, len(projects))
	for i, p := range projects {
		labels[i] = fmt.Sprintf("%s (#%d)", p.Title, p.Number)
	}
	idx, err := workflow.SurveyPrompter{}.Select("Select a project:", labels, nil)
	if err != nil {
		return "", gh.Project{}, err
	}
	return owner, projects[idx], nil
}

func runBoard(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	client := gh.NewClient()
	requireGh(ctx, client)

	config := usercfg.GetRuntimeConfig()
	owner, project, err := resolveBoardTarget(ctx, client, config)
	if err != nil {
		if err == workflow.ErrCancelled {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if boardExportFlag != "" {
		exportBoard(ctx, client, owner, project)
		return
	}

	if err := StartBoard(client, owner, project); err != nil {
		fmt.Fprintf(os.Stderr, "Board error: %v\n", err)
		os.Exit(1)
	}
}

func exportBoard(ctx context.Context, client *gh.Client, owner string, project gh.Project) {
	field := client.StatusField(ctx, owner, project.Number)
	items, err := client.ListItems(ctx, owner, project.Number)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	columns := board.Organize(items, field.OptionNames())
	html := render.KanbanHTML(owner, project.Title, columns)

	if err := os.WriteFile(boardExportFlag, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", boardExportFlag, err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d items across %d columns to %s\n", board.TotalItems(columns), len(columns), boardExportFlag)
}

func runProjectAdd(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	client := gh.NewClient()
	requireGh(ctx, client)

	var owner string
	if len(args) == 1 {
		owner = args[0]
	} else {
		owners := usercfg.GetAvailableOwners()
		prompter := workflow.SurveyPrompter{}
		if len(owners) == 0 {
			var err error
			owner, err = prompter.Input("GitHub owner (user or organization):", "")
			if err != nil || owner == "" {
				fmt.Println("Cancelled")
				return
			}
		} else {
			idx, err := prompter.Select("Owner to browse:", owners, nil)
			if err != nil {
				fmt.Println("Cancelled")
				return
			}
			owner = owners[idx]
		}
	}

	projects, err := client.DiscoverProjects(ctx, owner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(projects) == 0 {
		fmt.Printf("No projects found for %s\n", owner)
		return
	}

	ranked := gh.RankProjects(projects)
	labels := make([]string, len(ranked))
	for i, p := range ranked {
		labels[i] = fmt.Sprintf("%s (#%d)", p.Title, p.Number)
		if p.Closed {
			labels[i] += " [closed]"
		}
	}

	var selected []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message:  "Projects to save as shortcuts:",
		Options:  labels,
		PageSize: 15,
	}, &selected); err != nil {
		fmt.Println("Cancelled")
		return
	}

	added := 0
	for _, label := range selected {
		for i, l := range labels {
			if l != label {
				continue
			}
			shortcut := usercfg.WorkspaceProject{
				Name:        ranked[i].Title,
				Owner:       owner,
				Description: ranked[i].ShortDescription,
			}
			if err := usercfg.AddWorkspaceProject(shortcut); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to save %q: %v\n", ranked[i].Title, err)
				os.Exit(1)
			}
			added++
		}
	}
	fmt.Printf("Saved %d shortcut(s)\n", added)
}

func runProjectRemove(cmd *cobra.Command, args []string) {
	config := usercfg.GetRuntimeConfig()
	if len(config.WorkspaceProjects) == 0 {
		fmt.Println("No workspace shortcuts configured")
		return
	}

	labels := make([]string, len(config.WorkspaceProjects))
	for i, wp := range config.WorkspaceProjects {
		labels[i] = fmt.Sprintf("%s (%s)", wp.Name, wp.Owner)
	}

	var selected []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Shortcuts to remove:",
		Options: labels,
	}, &selected); err != nil {
		fmt.Println("Cancelled")
		return
	}
	if len(selected) == 0 {
		fmt.Println("Nothing selected")
		return
	}

	var indexes []int
	for _, label := range selected {
		for i, l := range labels {
			if l == label {
				indexes = append(indexes, i)
			}
		}
	}

	if err := usercfg.RemoveWorkspaceProjects(indexes); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to remove shortcuts: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %d shortcut(s)\n", len(indexes))
}

func runProjectList(cmd *cobra.Command, args []string) {
	config := usercfg.GetRuntimeConfig()
	if len(config.WorkspaceProjects) == 0 {
		fmt.Println("No workspace shortcuts configured. Add one with: ghp project add")
		return
	}

	for _, wp := range config.WorkspaceProjects {
		line := fmt.Sprintf("%s (%s)", wp.Name, wp.Owner)
		if wp.Description != "" {
			line += " - " + wp.Description
		}
		fmt.Println(line)
	}
}

func runSetup(cmd *cobra.Command, args []string) {
	fmt.Println("ghp Setup Wizard")
	fmt.Println("================")

	currentConfig := usercfg.GetRuntimeConfig()
	newConfig := currentConfig
	isFirstRun := !usercfg.IsConfigured()

	if isFirstRun {
		fmt.Println("Welcome! Let's configure ghp for your environment.")
		fmt.Println()
	} else {
		fmt.Printf("Existing config found at %s, modifying.\n\n", usercfg.Path())
		fmt.Printf("  Organizations: %v\n", currentConfig.Organizations)
		fmt.Printf("  Default Owner: %s\n", currentConfig.DefaultOwner)
		fmt.Printf("  Default Project: %s\n", currentConfig.DefaultProject)
		fmt.Printf("  Status Options: %v\n", currentConfig.StatusOptions)
		fmt.Printf("  Shortcuts: %d\n", len(currentConfig.WorkspaceProjects))
		fmt.Println()
	}

	// Organizations
	setupOrgs := isFirstRun
	if !isFirstRun {
		if err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Change organizations? (currently: %s)", strings.Join(currentConfig.Organizations, ", ")),
			Default: false,
		}, &setupOrgs); err != nil {
			fmt.Println("Setup cancelled")
			return
		}
	}

	if setupOrgs {
		var orgInput string
		if err := survey.AskOne(&survey.Input{
			Message: "Organizations (comma-separated, e.g. acme,contoso):",
			Default: strings.Join(currentConfig.Organizations, ", "),
		}, &orgInput); err != nil {
			fmt.Println("Setup cancelled")
			return
		}
		var cleaned []string
		for _, org := range strings.Split(orgInput, ",") {
			if org = strings.TrimSpace(org); org != "" {
				cleaned = append(cleaned, org)
			}
		}
		newConfig.Organizations = cleaned
	}

	// Default owner
	var defaultOwner string
	if err := survey.AskOne(&survey.Input{
		Message: "Default owner (your username or an org, empty to always pick):",
		Default: currentConfig.DefaultOwner,
	}, &defaultOwner); err != nil {
		fmt.Println("Setup cancelled")
		return
	}
	newConfig.DefaultOwner = strings.TrimSpace(defaultOwner)

	if newConfig.DefaultOwner != "" {
		showPicker := currentConfig.OwnerPickerEnabled()
		if err := survey.AskOne(&survey.Confirm{
			Message: "Still show the owner picker when a default owner is set?",
			Default: showPicker,
		}, &showPicker); err != nil {
			fmt.Println("Setup cancelled")
			return
		}
		newConfig.ShowOwnerPicker = &showPicker

		var defaultProject string
		if err := survey.AskOne(&survey.Input{
			Message: "Default project title (empty for none):",
			Default: currentConfig.DefaultProject,
		}, &defaultProject); err != nil {
			fmt.Println("Setup cancelled")
			return
		}
		newConfig.DefaultProject = strings.TrimSpace(defaultProject)
	}

	// Status vocabulary
	setupStatuses := false
	if err := survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Change status options? (currently: %s)", strings.Join(currentConfig.StatusOptions, ", ")),
		Default: false,
	}, &setupStatuses); err != nil {
		fmt.Println("Setup cancelled")
		return
	}

	if setupStatuses {
		var statusInput string
		if err := survey.AskOne(&survey.Input{
			Message: "Status options in column order (comma-separated):",
			Default: strings.Join(currentConfig.StatusOptions, ", "),
		}, &statusInput, survey.WithValidator(survey.Required)); err != nil {
			fmt.Println("Setup cancelled")
			return
		}
		var cleaned []string
		for _, s := range strings.Split(statusInput, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			newConfig.StatusOptions = cleaned
		}
	}

	if err := usercfg.Save(newConfig); err != nil {
		fmt.Printf("Failed to save config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nConfiguration saved to %s\n", usercfg.Path())

	// Offer to seed workspace shortcuts from discovery
	var addShortcuts bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Browse projects now and save shortcuts?",
		Default: isFirstRun,
	}, &addShortcuts); err != nil || !addShortcuts {
		return
	}
	runProjectAdd(cmd, nil)
}

func runConfigMigrate(cmd *cobra.Command, args []string) {
	err := usercfg.MigrateAndSave()
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func runConfigPath(cmd *cobra.Command, args []string) {
	fmt.Println(usercfg.Path())
}

func runConfigPrint(cmd *cobra.Command, args []string) {
	config := usercfg.GetRuntimeConfig()

	fmt.Printf("Configuration (effective):\n")
	fmt.Printf("  Schema Version: %d\n", config.SchemaVersion)
	fmt.Printf("  Organizations: %v\n", config.Organizations)
	fmt.Printf("  Default Owner: %s\n", config.DefaultOwner)
	fmt.Printf("  Default Project: %s\n", config.DefaultProject)
	fmt.Printf("  Show Owner Picker: %v\n", config.OwnerPickerEnabled())
	fmt.Printf("  Status Options: %v\n", config.StatusOptions)
	fmt.Printf("  Workspace Shortcuts: %d\n", len(config.WorkspaceProjects))
	fmt.Printf("  UI Preferences: %+v\n", config.UIPrefs)
	fmt.Printf("\nConfig file location: %s\n", usercfg.Path())
}

func runConfigGet(cmd *cobra.Command, args []string) {
	key := args[0]
	config := usercfg.GetRuntimeConfig()

	switch key {
	case "organizations":
		fmt.Println(strings.Join(config.Organizations, ","))
	case "default_owner":
		fmt.Println(config.DefaultOwner)
	case "default_project":
		fmt.Println(config.DefaultProject)
	case "status_options":
		fmt.Println(strings.Join(config.StatusOptions, ","))
	case "schema_version":
		fmt.Println(config.SchemaVersion)
	default:
		fmt.Printf("Unknown key: %s\n", key)
		fmt.Println("Available keys: organizations, default_owner, default_project, status_options, schema_version")
		os.Exit(1)
	}
}

func runConfigSet(cmd *cobra.Command, args []string) {
	key := args[0]
	value := args[1]

	// Load current config
	config, err := usercfg.Load()
	if err != nil && err != usercfg.ErrNotConfigured {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Validate and set the value
	switch key {
	case "default_owner":
		config.DefaultOwner = value

	case "default_project":
		config.DefaultProject = value

	case "status_options":
		var cleaned []string
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) == 0 {
			fmt.Println("status_options needs at least one status")
			os.Exit(1)
		}
		config.StatusOptions = cleaned

	case "organizations", "schema_version":
		fmt.Printf("Key '%s' cannot be set via 'config set'. Use 'ghp setup'.\n", key)
		os.Exit(1)

	default:
		fmt.Printf("Unknown key: %s\n", key)
		fmt.Println("Settable keys: default_owner, default_project, status_options")
		os.Exit(1)
	}

	// Save the updated config
	err = usercfg.Save(config)
	if err != nil {
		fmt.Printf("Failed to save config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

func runConfigDoctor(cmd *cobra.Command, args []string) {
	fmt.Println("🏥 ghp Configuration Doctor")
	fmt.Println("===========================")

	issues := 0

	// Check if config file exists
	configPath := usercfg.Path()
	legacyPath := usercfg.LegacyPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if _, err := os.Stat(legacyPath); os.IsNotExist(err) {
			fmt.Println("ℹ️  No config file found - using defaults")
			fmt.Printf("   Create one with: ghp setup\n")
		} else {
			fmt.Println("⚠️  Using legacy config path")
			fmt.Printf("   Consider migrating: ghp config migrate\n")
			fmt.Printf("   Legacy path: %s\n", legacyPath)
			fmt.Printf("   Preferred path: %s\n", configPath)
			issues++
		}
	} else {
		fmt.Println("✅ Config file found at XDG-compliant location")
	}

	// Load and validate config
	config := usercfg.GetRuntimeConfig()

	// Check schema version
	if config.SchemaVersion < usercfg.CurrentSchemaVersion {
		fmt.Printf("⚠️  Config schema is outdated (v%d, current: v%d)\n", config.SchemaVersion, usercfg.CurrentSchemaVersion)
		fmt.Println("   Run: ghp config migrate")
		issues++
	} else {
		fmt.Printf("✅ Config schema is current (v%d)\n", config.SchemaVersion)
	}

	// Check owners
	if len(config.Organizations) == 0 && config.DefaultOwner == "" && len(config.WorkspaceProjects) == 0 {
		fmt.Println("⚠️  No organizations, default owner, or shortcuts configured")
		fmt.Println("   Run: ghp setup")
		issues++
	} else {
		fmt.Printf("✅ Owners configured (orgs: %v, default: %q)\n", config.Organizations, config.DefaultOwner)
	}

	// Check status vocabulary
	if len(config.StatusOptions) == 0 {
		fmt.Println("⚠️  No status options configured")
		fmt.Println("   Run: ghp setup")
		issues++
	} else {
		fmt.Printf("✅ Status options: %s\n", strings.Join(config.StatusOptions, ", "))
	}

	// Check the gh CLI itself
	ctx := context.Background()
	client := gh.NewClient()
	if !client.IsInstalled(ctx) {
		fmt.Println("⚠️  gh CLI not found on PATH")
		fmt.Println("   Install it from https://cli.github.com")
		issues++
	} else if !client.IsAuthenticated(ctx) {
		fmt.Println("⚠️  gh CLI has no active session")
		fmt.Println("   Run: gh auth login")
		issues++
	} else {
		fmt.Println("✅ gh CLI installed and authenticated")
	}

	fmt.Println()
	if issues == 0 {
		fmt.Println("🎉 No issues found! Configuration looks healthy.")
	} else {
		fmt.Printf("Found %d issue(s). See suggestions above.\n", issues)
		os.Exit(1)
	}
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Println(version.GetVersionString())

	// Check for available updates (synchronous since user is asking about version)
	ch := version.StartUpdateCheck()
	select {
	case result := <-ch:
		if result.NewVersion != "" {
			fmt.Printf("\n\033[33mUpdate available: %s (current: %s)\033[0m\n", result.NewVersion, version.GetShortVersion())
			fmt.Println("\033[33mRun 'ghp update' to upgrade.\033[0m")
		}
	case <-time.After(5 * time.Second):
		// Don't block forever if GitHub is slow
	}
}

func runUpdate(cmd *cobra.Command, args []string) {
	fmt.Printf("Current version: %s\nChecking for updates...\n", version.GetShortVersion())

	installed, err := version.SelfUpdate(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	if installed == "" {
		fmt.Println("Already up to date.")
		return
	}
	fmt.Printf("Updated to %s\n", installed)
}
