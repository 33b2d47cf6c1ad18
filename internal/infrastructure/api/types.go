package api

import (
	"encoding/json"
	"strings"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// envelope campos comunes de las respuestas {status, message, data}.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code_two_factor"`
}

type verifyCodeResponse struct {
	Data struct {
		Token string    `json:"token"`
		Email string    `json:"email"`
		Roles rolesList `json:"roles"`
	} `json:"data"`
}

// rolesList acepta "ROLE_ADMIN", ["ROLE_ADMIN"] o [{"authority":"ROLE_ADMIN"}].
type rolesList []string

func (r *rolesList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*r = rolesList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*r = many
		return nil
	}
	var authorities []struct {
		Authority string `json:"authority"`
	}
	if err := json.Unmarshal(b, &authorities); err != nil {
		return err
	}
	out := make(rolesList, 0, len(authorities))
	for _, a := range authorities {
		out = append(out, a.Authority)
	}
	*r = out
	return nil
}

// First primer rol reconocido.
func (r rolesList) First() entity.Role {
	for _, s := range r {
		if role := entity.ParseRole(strings.TrimSpace(s)); role != "" {
			return role
		}
	}
	return ""
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// pageResponse página estilo Spring: {content, pageable, totalPages, totalElements, numberOfElements}.
type pageResponse[T any] struct {
	Content  []T `json:"content"`
	Pageable struct {
		PageNumber int `json:"pageNumber"`
		PageSize   int `json:"pageSize"`
	} `json:"pageable"`
	Number           int `json:"number"`
	Size             int `json:"size"`
	TotalPages       int `json:"totalPages"`
	TotalElements    int `json:"totalElements"`
	NumberOfElements int `json:"numberOfElements"`
}

func (p pageResponse[T]) toEntity() *entity.Page[T] {
	number, size := p.Number, p.Size
	if number == 0 {
		number = p.Pageable.PageNumber
	}
	if size == 0 {
		size = p.Pageable.PageSize
	}
	content := p.Content
	if content == nil {
		content = []T{}
	}
	return &entity.Page[T]{
		Content:          content,
		Number:           number,
		Size:             size,
		TotalPages:       p.TotalPages,
		TotalElements:    p.TotalElements,
		NumberOfElements: p.NumberOfElements,
	}
}

type subcategoriesResponse struct {
	Data []entity.Subcategory `json:"data"`
}
