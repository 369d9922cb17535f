package handler

import (
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"spotapi/internal/service"
)

// Multipart field names of the add-spot form.
const (
	formName        = "nama"
	formDescription = "deskripsi"
	formImage       = "gambar"
)

// spotName returns the decoded :name parameter, so "Pantai%20Kuta" addresses "Pantai Kuta".
func spotName(c *fiber.Ctx) string {
	raw := c.Params("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// ListSpots returns every spot with its total.
//
// @Summary  List tourist spots
// @Tags     spots
// @Produce  json
// @Success  200  {object}  service.SpotListResult
// @Failure  503  {object}  errorPayload
// @Router   /spots [get]
func ListSpots(svc service.SpotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, "FETCH_FAILED")
		}
		return c.JSON(res)
	}
}

// GetSpot returns one spot by name.
//
// @Summary  Get a tourist spot
// @Tags     spots
// @Produce  json
// @Param    name  path      string  true  "spot name"
// @Success  200   {object}  model.Spot
// @Failure  404   {object}  errorPayload
// @Router   /spots/{name} [get]
func GetSpot(svc service.SpotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spot, err := svc.Get(c.UserContext(), spotName(c))
		if err != nil {
			return writeServiceError(c, err, "INTERNAL_ERROR")
		}
		return c.JSON(spot)
	}
}

// CreateSpot accepts the add-spot form and stores the spot, replacing one with the same name.
//
// @Summary  Add or replace a tourist spot
// @Tags     spots
// @Accept   multipart/form-data
// @Produce  json
// @Param    nama       formData  string  true  "spot name"
// @Param    deskripsi  formData  string  true  "description"
// @Param    gambar     formData  file    true  "image"
// @Success  201  {object}  model.Spot
// @Failure  400  {object}  errorPayload
// @Failure  500  {object}  errorPayload
// @Router   /spots [post]
func CreateSpot(svc service.SpotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.SpotInput{
			Name:        c.FormValue(formName),
			Description: c.FormValue(formDescription),
		}

		// A missing file only matters once name and description passed validation.
		if fh, err := c.FormFile(formImage); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "IMAGE_OPEN_ERROR", "cannot open uploaded image")
			}
			defer f.Close()

			in.Image = f
			in.ImageSize = fh.Size
			in.ContentType = fh.Header.Get("Content-Type")
		}

		if err := service.ValidateSpotInput(in); err != nil {
			return writeServiceError(c, err, "BAD_REQUEST")
		}

		spot, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err, "UPLOAD_FAILED")
		}
		return c.Status(fiber.StatusCreated).JSON(spot)
	}
}

// DeleteSpot removes a spot and its image. Deleting an unknown name succeeds.
//
// @Summary  Delete a tourist spot
// @Tags     spots
// @Param    name  path  string  true  "spot name"
// @Success  204
// @Failure  500  {object}  errorPayload
// @Router   /spots/{name} [delete]
func DeleteSpot(svc service.SpotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), spotName(c)); err != nil {
			return writeServiceError(c, err, "DELETE_FAILED")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetSpotImage streams the staged image of a spot.
//
// @Summary  Download a spot image
// @Tags     spots
// @Produce  image/jpeg
// @Param    name  path  string  true  "spot name"
// @Success  200
// @Failure  404  {object}  errorPayload
// @Router   /spots/{name}/image [get]
func GetSpotImage(svc service.SpotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.OpenImage(c.UserContext(), spotName(c))
		if err != nil {
			return writeServiceError(c, err, "INTERNAL_ERROR")
		}
		defer rc.Close()

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		body, err := io.ReadAll(rc)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Send(body)
	}
}
