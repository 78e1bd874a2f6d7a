package domain

import "time"

type Guest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type GuestReq struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// GuestPatch is a partial update. A non-nil empty Email or Phone clears it.
type GuestPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (p GuestPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}

// Apply returns a copy of g with the patch applied.
func (p GuestPatch) Apply(g Guest) Guest {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Email != nil {
		g.Email = *p.Email
	}
	if p.Phone != nil {
		g.Phone = *p.Phone
	}
	return g
}

// GuestSummary is the guest embedded in reservation responses.
type GuestSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
