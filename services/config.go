package services

// DefaultOptions returns the built-in dropdown choices offered when neither
// the job nor the global settings override them.
func DefaultOptions() map[string][]string {
	return map[string][]string{
		"colors": {"None", "Red", "Yellow", "Green", "Blue"},
		"units":  {"Each", "LF", "SF", "Sausage", "Tube", "Roll", "Box"},
	}
}

// MergeConfig layers a job's local config over the global one. Non-empty
// job-level fields win; everything else falls through to global, then to
// the built-in defaults, so a merged config is always fully populated.
func MergeConfig(global, local *JobConfig) *JobConfig {
	merged := &JobConfig{
		MaterialsTemplate: DefaultMaterialsTemplate(),
		Options:           DefaultOptions(),
	}

	apply := func(c *JobConfig) {
		if c == nil {
			return
		}
		if len(c.MaterialsTemplate) > 0 {
			merged.MaterialsTemplate = c.MaterialsTemplate
		}
		for key, opts := range c.Options {
			if len(opts) > 0 {
				merged.Options[key] = opts
			}
		}
	}
	apply(global)
	apply(local)
	return merged
}
