package apierr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Handler returns the Fiber error handler that renders taxonomy errors as
// `{error: true, message, ...extra}` with the carried status code. Raw
// backend failures never leak: anything untyped becomes a 500. In dev mode
// the underlying error detail is included in the body.
func Handler(dev bool, log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			// Bodies over the transport limit surface as 413 before any
			// handler runs. Oversized uploads are a client mistake, so they
			// get the same 400 the upload handler's own size guard returns.
			if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":   true,
					"message": "File too large - maximum is 50MB",
				})
			}
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error":   true,
				"message": fiberErr.Message,
			})
		}

		apiErr := From(err)
		if cause := errors.Unwrap(apiErr); cause != nil && log != nil {
			log.WithFields(logrus.Fields{
				"status": apiErr.Status,
				"cause":  cause.Error(),
			}).Error(apiErr.Message)
		}

		body := fiber.Map{
			"error":   true,
			"message": apiErr.Message,
		}
		for k, v := range apiErr.Extra {
			body[k] = v
		}
		if dev {
			body["detail"] = apiErr.Error()
		}
		return c.Status(apiErr.Status).JSON(body)
	}
}
