package model

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CommentRequest struct {
	TeachingID string `json:"teachingId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Content    string `json:"content"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
