package dto

import (
	"mime/multipart"
)

// StatementRequest represents the incoming statement upload
type StatementRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password"`
}

// Validate performs basic validation on the request
func (r *StatementRequest) Validate() error {
	if r.File == nil {
		return ErrNoFile
	}
	return nil
}
