package shipping

// ValidationStatus represents the derived validation state of a shipment
type ValidationStatus string

const (
	ValidationStatusPending ValidationStatus = "pending"
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusInvalid ValidationStatus = "invalid"
	ValidationStatusWarning ValidationStatus = "warning"
)

// IsValid checks if the status is a valid ValidationStatus
func (s ValidationStatus) IsValid() bool {
	switch s {
	case ValidationStatusPending, ValidationStatusValid, ValidationStatusInvalid, ValidationStatusWarning:
		return true
	}
	return false
}

// String returns the string representation of ValidationStatus
func (s ValidationStatus) String() string {
	return string(s)
}

// ValidationResult is the output of validating a shipment's fields
type ValidationResult struct {
	Status   ValidationStatus
	Errors   []string
	Warnings []string
}

// Validate derives a shipment's validation state from its current fields.
// It is a pure function: identical input fields always yield an identical
// result, and it never mutates the shipment. Hard errors force the invalid
// status; warnings force the warning status only when no errors exist.
func Validate(s *Shipment) ValidationResult {
	var errors []string
	var warnings []string

	if s.To.FirstName == "" {
		errors = append(errors, "Recipient first name is required")
	}
	if s.To.AddressLine1 == "" {
		errors = append(errors, "Recipient address is required")
	}
	if s.To.City == "" {
		errors = append(errors, "Recipient city is required")
	}
	if s.To.State == "" {
		errors = append(errors, "Recipient state is required")
	}
	if s.To.ZipCode == "" {
		errors = append(errors, "Recipient ZIP code is required")
	}

	if s.From.AddressLine1 == "" {
		warnings = append(warnings, "Sender address is missing")
	}
	if s.Pkg.Length.IsZero() || s.Pkg.Width.IsZero() || s.Pkg.Height.IsZero() {
		warnings = append(warnings, "Package dimensions are missing")
	}
	if s.Pkg.WeightLbs == 0 && s.Pkg.WeightOz == 0 {
		warnings = append(warnings, "Package weight is zero or missing")
	}

	status := ValidationStatusValid
	if len(errors) > 0 {
		status = ValidationStatusInvalid
	} else if len(warnings) > 0 {
		status = ValidationStatusWarning
	}

	return ValidationResult{
		Status:   status,
		Errors:   errors,
		Warnings: warnings,
	}
}
