package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/container"
	"github.com/saulo-duarte/quiz-proctor/internal/router"
)

var adapter *chiadapter.ChiLambda

// REST only: sockets live on the long-running API. Unlock events still reach
// them through Redis when REDIS_ADDR is shared.
func init() {
	ctx := context.Background()
	if err := container.Bootstrap(ctx); err != nil {
		config.Logger.WithError(err).Fatal("Startup failed")
	}

	c := container.New(ctx)
	c.ProctorContainer.Start(ctx)
	adapter = chiadapter.New(router.New(c.Router(false)))
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
