package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/folder"
	"github.com/quillmail/ewsbox/pkg/utils"
)

// Home reports service status.
func Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"service": base.UPTRACE_SERVICE, "status": "ok"})
}

// NotFound renders the 404 response.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}

// Folders serves the classified folder directory written by the folders
// command.
func Folders(c *fiber.Ctx) error {
	fileMgr, ok := c.Locals("fileMgr").(utils.FileManager)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("Could not retrieve file manager")
	}

	data, err := fileMgr.ReadFile(base.FolderListFile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(
			fmt.Sprintf("Reading folder directory error %+v", err),
		)
	}

	directory := folder.Directory{}
	if err := json.Unmarshal(data, &directory); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(
			fmt.Sprintf("Unable to unmarshal folder directory %+v", err),
		)
	}

	return c.JSON(directory)
}

// FoldersByType serves one type's folders from the classified directory.
func FoldersByType(c *fiber.Ctx) error {
	t, ok := folder.ParseWellKnownType(c.Params("type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown folder type"})
	}

	fileMgr, ok := c.Locals("fileMgr").(utils.FileManager)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("Could not retrieve file manager")
	}

	data, err := fileMgr.ReadFile(base.FolderListFile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(
			fmt.Sprintf("Reading folder directory error %+v", err),
		)
	}

	directory := folder.Directory{}
	if err := json.Unmarshal(data, &directory); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(
			fmt.Sprintf("Unable to unmarshal folder directory %+v", err),
		)
	}

	return c.JSON(directory.ByType(t))
}
