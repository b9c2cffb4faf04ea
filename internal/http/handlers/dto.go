package handlers

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateUserRequest uses pointers so an absent field can be told apart from an empty one.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userIDResponse struct {
	Status string `json:"status"`
	UserID int64  `json:"user_id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginFailedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
