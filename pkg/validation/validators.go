package validation

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FactIcons are the icon names a fact counter may use.
var FactIcons = []string{
	"Smile", "FileText", "Headphones", "User", "Star", "Heart", "Camera", "Coffee",
	"Book", "Code", "Briefcase", "Award", "Check", "Clock", "Cloud", "Download",
	"Edit", "Eye", "Gift", "Globe", "Key", "Lock", "Mail", "Map", "Music", "Phone",
	"Search", "Settings", "Shield", "ShoppingCart", "Tag", "Trash2", "Upload", "Zap",
}

// ServiceIcons are the icon names a service card may use.
var ServiceIcons = []string{"Briefcase", "ClipboardList", "BarChart", "Binoculars", "Sun", "Calendar"}

// SocialPlatforms are the platforms a profile social link may point to.
var SocialPlatforms = []string{
	"Twitter", "Facebook", "Instagram", "LinkedIn", "GitHub", "YouTube", "TikTok",
	"Pinterest", "Reddit", "Discord", "Twitch", "Medium", "Behance", "Dribbble", "Other",
}

// New returns a validator with the custom tags registered and JSON field names
// used in error namespaces.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(JSONFieldName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("fact_icon", inSet(FactIcons))
	_ = v.RegisterValidation("service_icon", inSet(ServiceIcons))
	_ = v.RegisterValidation("social_platform", inSet(SocialPlatforms))
	_ = v.RegisterValidation("http_url", HTTPURL)
}

// HTTPURL accepts absolute http(s) URLs with a host.
func HTTPURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	u, err := url.Parse(val)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func inSet(values []string) validator.Func {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}

// JSONFieldName names struct fields by their json tag.
func JSONFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
