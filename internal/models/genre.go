package models

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
