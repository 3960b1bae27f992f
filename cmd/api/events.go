package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	applibro "github.com/xiebiao/libraryapi/internal/application/libro"
	"github.com/xiebiao/libraryapi/pkg/mq"
)

// newEventsCmd 订阅并打印图书事件，排查事件是否发出时使用
func newEventsCmd() *cobra.Command {
	var queue string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "订阅libro.*事件并打印",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.MQ.Enabled {
				return errors.New("未启用消息队列（mq.enabled=false）")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, queue, []string{"libro.*"}, log)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ok("正在监听 %s（Ctrl+C退出）", cfg.MQ.Exchange)

			err = consumer.Consume(ctx, printEvent)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&queue, "queue", "", "持久队列名，不填则使用临时队列")
	return cmd
}

func printEvent(routingKey string, body []byte) error {
	if routingKey != applibro.RoutingKeyLibroCreated {
		fmt.Printf("%s %s\n", color.YellowString(routingKey), body)
		return nil
	}

	var ev applibro.LibroCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("解析事件失败: %w", err)
	}

	fmt.Printf("%s #%d %s (%s, %s)\n",
		color.GreenString(routingKey), ev.ID, color.WhiteString(ev.Titulo), ev.Autor, ev.FechaPublicacion)
	log.Debug("收到事件", zap.String("routing_key", routingKey), zap.Uint("id", ev.ID))
	return nil
}
