package v1

import (
	"context"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

// notifier collects workflow messages so they can be returned in the body.
type notifier struct {
	messages []response.Message
}

func (n *notifier) Loading(msg string) { n.add("loading", msg) }
func (n *notifier) Success(msg string) { n.add("success", msg) }
func (n *notifier) Error(msg string)   { n.add("error", msg) }

func (n *notifier) add(level, msg string) {
	n.messages = append(n.messages, response.Message{Level: level, Text: msg})
}

// queryConfirmer approves when the request carries confirm=true. A client
// that gets 409 shows the prompt and repeats the request with the flag.
type queryConfirmer struct {
	confirmed bool
}

func confirmerFrom(ctx *fiber.Ctx) usecase.Confirmer {
	return queryConfirmer{confirmed: ctx.QueryBool("confirm", false)}
}

func (c queryConfirmer) Confirm(context.Context, usecase.Prompt) (bool, error) {
	return c.confirmed, nil
}
