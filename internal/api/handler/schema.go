package handler

// msgResponse is returned by operations that have no resource to show.
type msgResponse struct {
	Msg string `json:"msg"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Auth ---

type registerRequest struct {
	FirstName       string `json:"first_name"       validate:"required"                msg:"First name should not be empty."`
	LastName        string `json:"last_name"        validate:"required"                msg:"Last name should not be empty."`
	Email           string `json:"email"            validate:"required,email"          msg:"Email should be in email format."`
	Password        string `json:"password"         validate:"required,min=6"          msg:"Password should be 6 or more characters."`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"        msg:"Password confirmation does not match password."`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email" msg:"Email should be in email format."`
	Password string `json:"password" validate:"required"       msg:"Password should not be empty."`
}

// --- Profile ---

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"         validate:"required" msg:"Status is required."`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"         validate:"required" msg:"Skill is required."`
	YouTube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	LinkedIn       string `json:"linkedin"`
}

type experienceRequest struct {
	Title       string `json:"title"    validate:"required"            msg:"Title is required."`
	Company     string `json:"company"  validate:"required"            msg:"Company is required."`
	Location    string `json:"location"`
	From        string `json:"from"     validate:"required,date"       msg:"From date is required."`
	To          string `json:"to"       validate:"omitempty,date"      msg:"To date is not a valid date."`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"       validate:"required"       msg:"School is required."`
	Degree       string `json:"degree"       validate:"required"       msg:"Degree is required."`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"       msg:"Field of study is required."`
	From         string `json:"from"         validate:"required,date"  msg:"From date is required."`
	To           string `json:"to"           validate:"omitempty,date" msg:"To date is not a valid date."`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// --- Post ---

type postRequest struct {
	Text string `json:"text" validate:"required" msg:"Post should not be empty."`
}

type commentRequest struct {
	Text string `json:"text" validate:"required" msg:"Comment should not be empty."`
}
