package domain

const placeholderText = "Magnam dolores commodi suscipit. Necessitatibus eius consequatur ex aliquid fuga eum quidem. " +
	"Sit sint consectetur velit. Quisquam quos quisquam cupiditate. Et nemo qui impedit suscipit alias ea. " +
	"Quia fugiat sit in iste officiis commodi quidem hic quas."

const (
	placeholderImage  = "https://placehold.co/600x400"
	placeholderAvatar = "https://placehold.co/150x150"
)

// Placeholder content shown until a section has been saved at least once.
// Every call returns a fresh value so callers may mutate it.

func DefaultProfile() Profile {
	return Profile{
		Name:        "Your Name",
		Title:       "UI/UX Designer & Web Developer",
		About:       "Magnam dolores commodi suscipit. Necessitatibus eius consequatur ex aliquid fuga eum quidem.",
		AboutTop:    "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
		AboutBottom: "Officiis eligendi itaque labore et dolorum mollitia officiis optio vero. Quisquam sunt adipisci omnis et ut.",
		ResumeIntro: placeholderText,
		Email:       "email@example.com",
		Phone:       "+123 456 7890",
		Location:    "New York, USA",
		Birthday:    "1 May 1995",
		Website:     "https://www.example.com",
		Degree:      "Master",
		Freelance:   "Available",
	}
}

func DefaultFacts() Facts {
	return Facts{
		Intro: Intro{Title: "Facts", Description: placeholderText},
		Facts: []Fact{
			{Icon: "Smile", Count: 232, Title: "Happy Clients", Description: "consequuntur quae qui deca rode"},
			{Icon: "FileText", Count: 521, Title: "Projects", Description: "adipisci atque cum quia aut numquam delectus"},
			{Icon: "Headphones", Count: 1453, Title: "Hours Of Support", Description: "aut commodi quaerat. Aliquam ratione"},
			{Icon: "User", Count: 32, Title: "Hard Workers", Description: "rerum asperiores dolor molestiae doloribu"},
		},
	}
}

func DefaultSkills() Skills {
	return Skills{
		Intro:           Intro{Title: "Skills", Description: placeholderText},
		Skills:          []Skill{},
		TechnicalSkills: []TechnicalSkill{},
		SoftSkills:      []string{},
	}
}

func DefaultServices() Services {
	return Services{
		Intro: Intro{Title: "Services", Description: placeholderText},
		Services: []Service{
			{Icon: "Briefcase", Title: "Lorem Ipsum", Description: "Voluptatum deleniti atque corrupti quos dolores et quas molestias excepturi sint occaecati cupiditate non provident"},
			{Icon: "ClipboardList", Title: "Dolor Sitema", Description: "Minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat tarad limino ata"},
			{Icon: "BarChart", Title: "Sed ut perspiciatis", Description: "Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur"},
		},
	}
}

func DefaultTestimonials() Testimonials {
	return Testimonials{
		Intro: Intro{Title: "Testimonials", Description: placeholderText},
		Testimonials: []Testimonial{
			{
				Name:     "Saul Goodman",
				Position: "CEO & Founder",
				Text:     "Proin iaculis purus consequat sem cure digni ssim donec porttitora entum suscipit rhoncus. Accusantium quam, ultricies eget id, aliquam eget nibh et.",
				ImageURL: placeholderAvatar,
			},
			{
				Name:     "Sara Wilsson",
				Position: "Designer",
				Text:     "Export tempor illum tamen malis malis eram quae irure esse labore quem cillum quid cillum eram malis quorum velit fore eram velit sunt aliqua noster.",
				ImageURL: placeholderAvatar,
			},
		},
	}
}

func DefaultPortfolio() Portfolio {
	return Portfolio{
		Intro: Intro{Title: "Portfolio", Description: placeholderText},
		Items: []PortfolioItem{
			{ID: "1", Title: "App 1", Category: "app", ImageURL: placeholderImage},
			{ID: "2", Title: "Web 3", Category: "web", ImageURL: placeholderImage},
			{ID: "3", Title: "App 2", Category: "app", ImageURL: placeholderImage},
		},
	}
}
