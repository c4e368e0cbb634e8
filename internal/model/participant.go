package model

// Participant is one roster entry the bot can impersonate.
type Participant struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	PictureURL string `json:"picture_url"`
}

// ParticipantFields are the replaceable parts of a Participant.
type ParticipantFields struct {
	Name       string
	Position   string
	PictureURL string
}

func (f ParticipantFields) WithID(id int64) Participant {
	return Participant{
		ID:         id,
		Name:       f.Name,
		Position:   f.Position,
		PictureURL: f.PictureURL,
	}
}

func (p Participant) Fields() ParticipantFields {
	return ParticipantFields{
		Name:       p.Name,
		Position:   p.Position,
		PictureURL: p.PictureURL,
	}
}
