package middleware

import "github.com/gofiber/fiber/v3"

// CORS headers carried by every API response.
const (
	apiAllowOrigin  = "*"
	apiAllowHeaders = "Content-Type"
	apiAllowMethods = "GET, OPTIONS"
)

// APIHeaders sets the permissive CORS headers the search API always sends,
// whether or not the request carried an Origin header. Unlike the cors
// middleware it does not depend on the request and never short-circuits
// preflight requests.
func APIHeaders(c fiber.Ctx) error {
	SetAPIHeaders(c)
	return c.Next()
}

// SetAPIHeaders sets the API CORS headers on the response.
func SetAPIHeaders(c fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, apiAllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowHeaders, apiAllowHeaders)
	c.Set(fiber.HeaderAccessControlAllowMethods, apiAllowMethods)
}
