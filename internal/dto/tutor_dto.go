package dto

import "time"

type UploadResponse struct {
	Pages       int `json:"pages"`
	FirstWidth  int `json:"first_width,omitempty"`
	FirstHeight int `json:"first_height,omitempty"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

type TurnDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type AskResponse struct {
	Sent  TurnDTO `json:"sent"`
	Reply TurnDTO `json:"reply"`
}

type HistoryResponse struct {
	Turns []TurnDTO `json:"turns"`
}
