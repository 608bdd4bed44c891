package usercfg

// DefaultStatusOptions is the status vocabulary of GitHub's standard project
// template, used until a board's real status field has been read.
func DefaultStatusOptions() []string {
	return []string{"Todo", "In Progress", "Done"}
}

func getDefaults() Config {
	t := true
	return Config{
		SchemaVersion:   CurrentSchemaVersion,
		Organizations:   nil,
		DefaultOwner:    "",
		DefaultProject:  "",
		ShowOwnerPicker: &t,
		StatusOptions:   DefaultStatusOptions(),
	}
}

// GetAvailableOwners returns the selectable owners from the runtime config,
// organizations first, then the default owner when it isn't already listed.
func GetAvailableOwners() []string {
	config := GetRuntimeConfig()

	owners := make([]string, 0, len(config.Organizations)+1)
	owners = append(owners, config.Organizations...)
	if config.DefaultOwner != "" {
		found := false
		for _, o := range owners {
			if o == config.DefaultOwner {
				found = true
				break
			}
		}
		if !found {
			owners = append(owners, config.DefaultOwner)
		}
	}
	return owners
}
