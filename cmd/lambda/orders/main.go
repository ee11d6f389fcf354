package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/handlers"
	"github.com/tuanvy6922/caketeaadmin/pkg/lambda"
)

var connections = lambda.GetConnectionManager()

func notFound() *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusNotFound,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"error":"Not found"}`),
	}
}

func unauthorized() *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusUnauthorized,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"error":"Invalid or expired token"}`),
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := connections.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"Internal server error"}`,
		}, nil
	}

	req := lambda.FromAPIGateway(event)

	token := strings.TrimPrefix(req.Header("Authorization"), "Bearer ")
	if _, err := container.AuthService.ValidateToken(token); token == "" || err != nil {
		return unauthorized().ToAPIGateway(), nil
	}

	orderHandler := handlers.NewOrderHandler(container.OrderService, container.Location)
	dashboardHandler := handlers.NewDashboardHandler(container.DashboardService)

	var resp *lambda.Response
	switch {
	case req.Method == http.MethodGet && req.Path == "/api/v1/orders":
		resp, err = orderHandler.HandleList(ctx, req)
	case req.Method == http.MethodGet && req.Path == "/api/v1/dashboard":
		resp, err = dashboardHandler.HandleDashboard(ctx, req)
	case req.Method == http.MethodGet && req.PathParams["id"] != "":
		resp, err = orderHandler.HandleGet(ctx, req)
	default:
		resp = notFound()
	}

	if err != nil {
		container.Logger.WithError(err).WithField("path", req.Path).Error("Lambda handler failed")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"Internal server error"}`,
		}, nil
	}

	return resp.ToAPIGateway(), nil
}

func main() {
	awslambda.Start(handler)
}
