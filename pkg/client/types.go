package client

import "time"

// User is the public projection of an account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the verified token subject echoed by the protected route.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"exp"`
}

// Session mirrors the session block returned by login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	Session Session `json:"session"`
	User    User    `json:"user"`
}

// RegisterInput creates an account with an explicit role.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignupInput creates a user-role account.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// TutorProfileInput is the payload for saving the caller's profile.
type TutorProfileInput struct {
	FullName  string   `json:"full_name,omitempty"`
	Headline  string   `json:"headline,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Subjects  []string `json:"subjects"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
	Available *bool    `json:"available,omitempty"`
}

// TutorProfile is the owner's full view of a profile.
type TutorProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	Subjects  []string  `json:"subjects"`
	AvatarURL *string   `json:"avatar_url"`
	Available bool      `json:"available"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicTutor is a listing entry.
type PublicTutor struct {
	ID        string   `json:"id"`
	Headline  string   `json:"headline"`
	Subjects  []string `json:"subjects"`
	FullName  string   `json:"fullName"`
	AvatarURL *string  `json:"avatarUrl"`
}

// TutorDetail is the public detail view.
type TutorDetail struct {
	PublicTutor
	Bio string `json:"bio"`
}

// JobInput creates or replaces a job.
type JobInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// Job is a job board entry.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Status      string    `json:"status"`
	PostedBy    *string   `json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
