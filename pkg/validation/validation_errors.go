package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to labels used in messages
var FieldLabels = map[string]string{
	"name":            "Name",
	"title":           "Title",
	"about":           "About",
	"aboutTop":        "About Top",
	"aboutBottom":     "About Bottom",
	"resumeIntro":     "Resume introduction",
	"summary":         "Summary",
	"email":           "Email",
	"phone":           "Phone",
	"location":        "Location",
	"birthday":        "Birthday",
	"website":         "Website",
	"degree":          "Degree",
	"freelance":       "Freelance status",
	"image":           "Image",
	"imageUrl":        "Image URL",
	"detailsUrl":      "Details URL",
	"url":             "URL",
	"platform":        "Platform",
	"icon":            "Icon",
	"count":           "Count",
	"description":     "Description",
	"category":        "Category",
	"details":         "Details",
	"percentage":      "Percentage",
	"position":        "Position",
	"text":            "Testimonial text",
	"school":          "School",
	"company":         "Company",
	"startYear":       "Start year",
	"endYear":         "End year",
	"issuer":          "Issuer",
	"date":            "Date",
	"client":          "Client",
	"subject":         "Subject",
	"message":         "Message",
	"images":          "Images",
	"softSkills":      "Soft skills",
	"technicalSkills": "Technical skills",
}

// FieldErrors converts validator.ValidationErrors into messages keyed by the
// JSON path of the offending field, e.g. "items[1].imageUrl".
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		out[fieldPath(e.Namespace())] = formatSingleError(e)
	}
	return out
}

// fieldPath drops the root struct name from a namespace.
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters.", label, param)
		}
		return fmt.Sprintf("%s must be at least %s.", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters.", label, param)
		}
		return fmt.Sprintf("%s must be at most %s.", label, param)

	case "email":
		return "Please enter a valid email address."

	case "url", "http_url":
		return fmt.Sprintf("Please enter a valid %s.", strings.ToLower(label))

	case "fact_icon", "service_icon":
		return fmt.Sprintf("%s must be one of the available icons.", label)

	case "social_platform":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(SocialPlatforms, ", "))

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(param, " ", ", "))

	default:
		return fmt.Sprintf("%s is invalid (%s).", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
