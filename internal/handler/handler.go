// Package handler holds the gin HTTP handlers for the advisor API.
package handler

import (
	"FinanceAdvisor/internal/advisor"
	"FinanceAdvisor/internal/auth"
)

type Handler struct {
	tokens  *auth.TokenManager
	advisor *advisor.Advisor
}

func New(tokens *auth.TokenManager, adv *advisor.Advisor) *Handler {
	return &Handler{tokens: tokens, advisor: adv}
}

// Shared response shapes

type SuccessResponse struct {
	Message string `json:"message" example:"User created successfully"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error cause and description"`
}

const advisorUnavailableMessage = "advisor unavailable, try again"
