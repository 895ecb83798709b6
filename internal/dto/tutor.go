package dto

import "github.com/lummy-consults/lummy-api/internal/models"

// PublicTutorProfile is the listing projection of an active tutor.
type PublicTutorProfile struct {
	ID        string   `json:"id"`
	Headline  string   `json:"headline"`
	Subjects  []string `json:"subjects"`
	FullName  string   `json:"fullName"`
	AvatarURL *string  `json:"avatarUrl"`
}

// TutorDetailProfile is the single-tutor projection served to strangers.
type TutorDetailProfile struct {
	ID        string   `json:"id"`
	Headline  string   `json:"headline"`
	Bio       string   `json:"bio"`
	Subjects  []string `json:"subjects"`
	FullName  string   `json:"fullName"`
	AvatarURL *string  `json:"avatarUrl"`
}

// ToPublicTutorProfile maps a stored row to its listing projection.
func ToPublicTutorProfile(p models.TutorProfile) PublicTutorProfile {
	return PublicTutorProfile{
		ID:        p.ID,
		Headline:  p.Headline,
		Subjects:  subjects(p.Subjects),
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
	}
}

// ToPublicTutorProfiles maps rows preserving order.
func ToPublicTutorProfiles(rows []models.TutorProfile) []PublicTutorProfile {
	out := make([]PublicTutorProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToPublicTutorProfile(row))
	}
	return out
}

// ToTutorDetailProfile maps a stored row to its detail projection.
func ToTutorDetailProfile(p models.TutorProfile) TutorDetailProfile {
	return TutorDetailProfile{
		ID:        p.ID,
		Headline:  p.Headline,
		Bio:       p.Bio,
		Subjects:  subjects(p.Subjects),
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
	}
}

func subjects(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
