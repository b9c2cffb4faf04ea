package handlers

import (
	"errors"
	"strconv"

	"usersvc/internal/domain"
	"usersvc/internal/log"
	"usersvc/internal/services"
	"usersvc/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const banner = "User Management System"

type UserHandler struct {
	Users *services.UserService
}

// GET /
func (h *UserHandler) Home(c *fiber.Ctx) error {
	return c.SendString(banner)
}

// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GET /user/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := userID(c)
	if !ok {
		return respondErr(c, services.ErrNotFound)
	}
	u, err := h.Users.GetUser(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(u)
}

// POST /users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := decodeJSON(c, &req); err != nil {
		log.Security(c, "validation.fail", map[string]any{"op": "users.create", "reason": "bad_json"})
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Invalid input"})
	}
	id, err := h.Users.CreateUser(c.UserContext(), services.CreateUserInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			log.Security(c, "users.create.conflict", map[string]any{"email": req.Email})
		}
		return respondErr(c, err)
	}
	log.Audit(c, "users.create", map[string]any{"user_id": id, "email": req.Email})
	return c.Status(fiber.StatusCreated).JSON(userIDResponse{Status: "success", UserID: id})
}

// PUT /user/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := userID(c)
	if !ok {
		return respondErr(c, services.ErrNotFound)
	}
	if !nonEmptyObject(c) {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Invalid data"})
	}
	var req updateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Invalid data"})
	}
	if err := h.Users.UpdateUser(c.UserContext(), id, domain.UserPatch{Name: req.Name, Email: req.Email}); err != nil {
		return respondErr(c, err)
	}
	log.Audit(c, "users.update", map[string]any{"user_id": id})
	return c.JSON(statusResponse{Status: "User updated"})
}

// DELETE /user/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := userID(c)
	if !ok {
		return respondErr(c, services.ErrNotFound)
	}
	if err := h.Users.DeleteUser(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	log.Audit(c, "users.delete", map[string]any{"user_id": id})
	return c.JSON(statusResponse{Status: "User deleted"})
}

// GET /search?name=
func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.Users.SearchUsers(c.UserContext(), c.Query("name"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(users)
}

// POST /login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Invalid input"})
	}
	id, err := h.Users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return respondErr(c, err)
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": req.Email, "user_id": id})
	return c.JSON(userIDResponse{Status: "success", UserID: id})
}

// userID reads the :id path parameter. Ids the store can never hold are reported as absent.
func userID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return validate.ID(id)
}
