package dto

// LoginRequest entrada del login (formulario o JSON).
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	DistrictID string `json:"district_id,omitempty"`
}

// LoginResponse token de sesión + usuario. Landing es la ruta a la que debe ir el usuario.
type LoginResponse struct {
	Token   string       `json:"token"`
	Landing string       `json:"landing"`
	User    UserResponse `json:"user"`
}
