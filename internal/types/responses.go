package types

type UserResponse struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	ProfilePicture     *string `json:"profile_picture"`
	CurrentWorkspaceID *uint   `json:"current_workspace_id"`
}
