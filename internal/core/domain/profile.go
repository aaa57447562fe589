package domain

import "time"

// Social holds the optional social network links of a profile.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// Experience is a single entry of a profile's work history.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a single entry of a profile's education history.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is the career/social metadata owned by exactly one user.
// Experience and Education are kept newest-first.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	User           *UserSummary `json:"user,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
}

// RemoveExperience drops every entry with the given id. Unknown ids are ignored.
func (p *Profile) RemoveExperience(id string) {
	kept := make([]Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
}

// ReplaceExperience swaps the entry with the given id for next, keeping the id.
// Unknown ids are ignored.
func (p *Profile) ReplaceExperience(id string, next Experience) {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			next.ID = id
			p.Experience[i] = next
		}
	}
}

func (p *Profile) RemoveEducation(id string) {
	kept := make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	p.Education = kept
}

func (p *Profile) ReplaceEducation(id string, next Education) {
	for i := range p.Education {
		if p.Education[i].ID == id {
			next.ID = id
			p.Education[i] = next
		}
	}
}
