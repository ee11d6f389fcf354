package handlers

// @title CakeTea Admin API
// @version 1.0
// @description Order list, revenue dashboard and staff directory for the cafe admin panel

// @contact.name API Support
// @contact.url https://github.com/tuanvy6922/caketeaadmin

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name orders
// @tag.description Order listing, status changes and live updates

// @tag.name dashboard
// @tag.description Revenue overview

// @tag.name exports
// @tag.description Excel exports of the order list

// @tag.name staff
// @tag.description Staff directory management

// @tag.name auth
// @tag.description Token issuing
