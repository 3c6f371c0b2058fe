package dto

import "shopchat-be/pkg/store"

type SendMessageRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" validate:"required,max=500"`
	Age       string `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
}

type SendMessageResponse struct {
	SessionId      string            `json:"session_id"`
	Content        string            `json:"content"`
	Products       []store.Candidate `json:"products"`
	DynamicPrompts []string          `json:"dynamic_prompts"`
	SearchId       string            `json:"search_id,omitempty"`
}
