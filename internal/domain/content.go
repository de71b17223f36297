package domain

// Intro is the heading block shown above a list section.
type Intro struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
}

// SocialLink is one entry in the profile's social bar.
type SocialLink struct {
	Platform string `json:"platform" validate:"required,social_platform"`
	URL      string `json:"url" validate:"required,http_url"`
	Icon     string `json:"icon,omitempty"`
}

// Profile is the singleton owner record. It is merged on save, so optional
// fields left empty keep their stored value.
type Profile struct {
	Name        string       `json:"name" validate:"required,min=2"`
	Title       string       `json:"title" validate:"required,min=2"`
	About       string       `json:"about" validate:"required,min=10"`
	AboutTop    string       `json:"aboutTop,omitempty" validate:"omitempty,min=10"`
	AboutBottom string       `json:"aboutBottom,omitempty" validate:"omitempty,min=10"`
	ResumeIntro string       `json:"resumeIntro,omitempty" validate:"omitempty,min=10"`
	Summary     string       `json:"summary,omitempty"`
	Email       string       `json:"email" validate:"required,email"`
	Phone       string       `json:"phone" validate:"required,min=5"`
	Location    string       `json:"location" validate:"required,min=2"`
	Birthday    string       `json:"birthday" validate:"required,min=2"`
	Website     string       `json:"website" validate:"required,http_url"`
	Degree      string       `json:"degree" validate:"required,min=2"`
	Freelance   string       `json:"freelance" validate:"required,min=2"`
	Image       string       `json:"image,omitempty" validate:"omitempty,http_url"`
	Socials     []SocialLink `json:"socials,omitempty" validate:"dive"`
}

type Fact struct {
	ID          string `json:"id,omitempty"`
	Icon        string `json:"icon" validate:"required,fact_icon"`
	Count       int    `json:"count" validate:"min=0"`
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
}

type Facts struct {
	Intro Intro  `json:"intro"`
	Facts []Fact `json:"facts" validate:"dive"`
}

type Skill struct {
	Name       string `json:"name" validate:"required"`
	Percentage int    `json:"percentage" validate:"min=0,max=100"`
}

type TechnicalSkill struct {
	Category string `json:"category" validate:"required"`
	Details  string `json:"details" validate:"required"`
}

type Skills struct {
	Intro           Intro            `json:"intro"`
	Skills          []Skill          `json:"skills" validate:"dive"`
	TechnicalSkills []TechnicalSkill `json:"technicalSkills" validate:"dive"`
	SoftSkills      []string         `json:"softSkills" validate:"dive,required"`
}

type Service struct {
	ID          string `json:"id,omitempty"`
	Icon        string `json:"icon" validate:"required,service_icon"`
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=5"`
}

type Services struct {
	Intro    Intro     `json:"intro"`
	Services []Service `json:"services" validate:"dive"`
}

type Testimonial struct {
	Name     string `json:"name" validate:"required,min=2"`
	Position string `json:"position" validate:"required,min=2"`
	Text     string `json:"text" validate:"required,min=10"`
	ImageURL string `json:"imageUrl" validate:"required,http_url"`
}

type Testimonials struct {
	Intro        Intro         `json:"intro"`
	Testimonials []Testimonial `json:"testimonials" validate:"dive"`
}

type PortfolioItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required,min=2"`
	Category    string   `json:"category" validate:"required"`
	ImageURL    string   `json:"imageUrl" validate:"required,http_url"`
	DetailsURL  string   `json:"detailsUrl,omitempty" validate:"omitempty,http_url"`
	Client      string   `json:"client,omitempty"`
	Date        string   `json:"date,omitempty"`
	URL         string   `json:"url,omitempty" validate:"omitempty,http_url"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty" validate:"dive,http_url"`
}

type Portfolio struct {
	Intro Intro           `json:"intro"`
	Items []PortfolioItem `json:"items" validate:"dive"`
}

// FindItem returns the item with the given id.
func (p *Portfolio) FindItem(id string) (*PortfolioItem, bool) {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i], true
		}
	}
	return nil, false
}

// Categories returns the distinct item categories in first-seen order.
func (p *Portfolio) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range p.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Entry is a record stored as its own document in a collection section.
type Entry interface {
	EntryID() string
}

type EducationEntry struct {
	ID          string `json:"id"`
	Degree      string `json:"degree" validate:"required,min=2"`
	School      string `json:"school" validate:"required,min=2"`
	StartYear   string `json:"startYear" validate:"required,min=2"`
	EndYear     string `json:"endYear" validate:"required,min=2"`
	Location    string `json:"location" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
}

func (e EducationEntry) EntryID() string { return e.ID }

type ExperienceEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,min=2"`
	Company     string `json:"company" validate:"required,min=2"`
	StartYear   string `json:"startYear" validate:"required,min=2"`
	EndYear     string `json:"endYear" validate:"required,min=2"`
	Location    string `json:"location" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
}

func (e ExperienceEntry) EntryID() string { return e.ID }

type Certificate struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,min=2"`
	Issuer      string `json:"issuer" validate:"required,min=2"`
	Date        string `json:"date" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
}

func (c Certificate) EntryID() string { return c.ID }

// SiteContent is everything the public page renders.
type SiteContent struct {
	Profile      Profile           `json:"profile"`
	Facts        Facts             `json:"facts"`
	Skills       Skills            `json:"skills"`
	Services     Services          `json:"services"`
	Testimonials Testimonials      `json:"testimonials"`
	Portfolio    Portfolio         `json:"portfolio"`
	Education    []EducationEntry  `json:"education"`
	Experience   []ExperienceEntry `json:"experience"`
	Certificates []Certificate     `json:"certificates"`
	// Placeholder lists sections that have never been saved and show defaults.
	Placeholder map[Section]bool `json:"placeholder"`
}
