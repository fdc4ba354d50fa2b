package cli

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/handlers"
	"github.com/quillmail/ewsbox/pkg/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classified folder directory over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}

		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("fileMgr", utils.OSFileManager{})
			return c.Next()
		})

		app.Get("/", handlers.Home)
		app.Get("/folders", handlers.Folders)
		app.Get("/folders/:type", handlers.FoldersByType)
		app.Use(handlers.NotFound)

		return app.Listen(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
