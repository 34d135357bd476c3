package validator

import (
	"errors"

	"github.com/NVIDIA/pipeline-preflight/pkg/options"
)

// checkApplicability enforces the options a service backend cannot run
// without. Other backends pass silently.
func checkApplicability(rc *ruleContext) []Violation {
	if !rc.service {
		return nil
	}

	var vs []Violation
	if rc.supplied.GoogleCloud().Project == "" {
		vs = append(vs, missingOption(options.Project))
	}
	if rc.effective.GoogleCloud().Region == "" {
		vs = append(vs, missingOption(options.Region))
	}
	vs = append(vs, checkStorageLocations(rc.supplied)...)
	return vs
}

func missingOption(name string) Violation {
	return violationf(GroupApplicability, []string{name}, "Missing required option: %s.", name)
}

// checkStorageLocations passes when either location is a valid storage path,
// since normalization derives the other one from it.
func checkStorageLocations(s *options.Store) []Violation {
	temp, tempOK := storagePathViolation(s, options.TempLocation)
	staging, stagingOK := storagePathViolation(s, options.StagingLocation)
	if tempOK || stagingOK {
		return nil
	}
	return []Violation{temp, staging}
}

func storagePathViolation(s *options.Store, name string) (Violation, bool) {
	if !s.IsSet(name) {
		return violationf(GroupApplicability, []string{name}, "Missing GCS path option: %s.", name), false
	}

	path := s.String(name)
	_, _, err := ParseGCSPath(path)
	if err == nil {
		return Violation{}, true
	}

	var pe *GCSPathError
	if errors.As(err, &pe) {
		switch pe.Reason {
		case GCSReasonBucket:
			return violationf(GroupApplicability, []string{name},
				"Invalid GCS bucket (%s), given for the option: %s. See https://developers.google.com/storage/docs/bucketnaming for more details.",
				pe.Value, name), false
		case GCSReasonObject:
			return violationf(GroupApplicability, []string{name},
				"Invalid GCS object (%s), given for the option: %s.", pe.Value, name), false
		}
	}
	return violationf(GroupApplicability, []string{name},
		"Invalid GCS path (%s), given for the option: %s.", path, name), false
}
