package domain

// Section names a block of site content and the editor that owns it.
type Section string

const (
	SectionProfile      Section = "profile"
	SectionFacts        Section = "facts"
	SectionSkills       Section = "skills"
	SectionServices     Section = "services"
	SectionTestimonials Section = "testimonials"
	SectionPortfolio    Section = "portfolio"
	SectionEducation    Section = "education"
	SectionExperience   Section = "experience"
	SectionCertificates Section = "certificates"
)

// SectionKind tells how a section is persisted.
type SectionKind string

const (
	// KindSingleton sections live in one document with a well-known id.
	KindSingleton SectionKind = "singleton"
	// KindCollection sections keep one document per entry.
	KindCollection SectionKind = "collection"
)

// Well-known singleton document ids.
const (
	ProfileDocID = "main"
	SectionDocID = "data"
)

// SectionInfo describes a section for the admin dashboard.
type SectionInfo struct {
	Name       Section     `json:"name"`
	Title      string      `json:"title"`
	Kind       SectionKind `json:"kind"`
	Collection string      `json:"collection"`
	DocID      string      `json:"docId,omitempty"`
	Merge      bool        `json:"merge"`
}

// Sections lists every content section in dashboard order.
var Sections = []SectionInfo{
	{Name: SectionProfile, Title: "Profile", Kind: KindSingleton, Collection: "profile", DocID: ProfileDocID, Merge: true},
	{Name: SectionFacts, Title: "Facts", Kind: KindSingleton, Collection: "facts", DocID: SectionDocID},
	{Name: SectionSkills, Title: "Skills", Kind: KindSingleton, Collection: "skills", DocID: SectionDocID},
	{Name: SectionServices, Title: "Services", Kind: KindSingleton, Collection: "services", DocID: SectionDocID},
	{Name: SectionTestimonials, Title: "Testimonials", Kind: KindSingleton, Collection: "testimonials", DocID: SectionDocID},
	{Name: SectionPortfolio, Title: "Portfolio", Kind: KindSingleton, Collection: "portfolio", DocID: SectionDocID},
	{Name: SectionEducation, Title: "Education", Kind: KindCollection, Collection: "education"},
	{Name: SectionExperience, Title: "Experience", Kind: KindCollection, Collection: "experience"},
	{Name: SectionCertificates, Title: "Certificates", Kind: KindCollection, Collection: "certificates"},
}

// LookupSection returns the section description or ErrUnknownSection.
func LookupSection(name string) (SectionInfo, error) {
	for _, s := range Sections {
		if string(s.Name) == name {
			return s, nil
		}
	}
	return SectionInfo{}, ErrUnknownSection
}
