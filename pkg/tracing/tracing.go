// Package tracing 封装OpenTelemetry分布式追踪
//
// 一次列表请求的Span结构：
//
//	GET /api/Libros                 (middleware.Tracing创建的根Span)
//	└─ LibroService.ListLibros      (cache.hit=true|false)
//
// 上游服务通过W3C traceparent请求头传入上下文时，根Span会挂在上游Span之下：
//
//	traceparent: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//	              └─ TraceID ─────────────────────────┘ └─ SpanID ───┘
//
// 未调用InitTracer时otel使用全局的空实现，StartSpan依旧可以调用，只是不会导出任何数据。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Options 追踪初始化参数
type Options struct {
	ServiceName string // 在Jaeger UI中显示的服务名
	Endpoint    string // OTLP gRPC端点，如 localhost:4317
	Insecure    bool   // 禁用TLS（本地Jaeger）
}

// InitTracer 初始化全局Tracer Provider，导出到OTLP gRPC端点
//
// 返回的shutdown必须在程序退出前调用，否则最后一批Span可能丢失。
//
//	shutdown, err := tracing.InitTracer(tracing.Options{
//	    ServiceName: "library-api",
//	    Endpoint:    "localhost:4317",
//	    Insecure:    true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
func InitTracer(opts Options) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporterOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.Endpoint)}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}

	// otlptracegrpc.New不会等待连接建立，Collector不可用时Span在后台发送失败
	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	return InitWithExporter(ctx, opts.ServiceName, exporter)
}

// InitWithExporter 用指定的exporter初始化全局Tracer Provider
// 测试里传入tracetest.InMemoryExporter即可断言产生的Span
func InitWithExporter(ctx context.Context, serviceName string, exporter sdktrace.SpanExporter) (func(context.Context) error, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 采样策略：AlwaysSample（单体服务流量不大）
	// BatchSpanProcessor默认每5秒或512个Span发送一次
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建Span
// ctx包含父Span时新Span自动成为子Span，否则成为根Span
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}

// Extract 从载体（如HTTP请求头）中提取上游传入的追踪上下文
func Extract(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// ExtractTraceID 从Context提取TraceID（32位十六进制），没有有效Span时返回空串
// 访问日志用它把日志和Jaeger中的链路关联起来
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ExtractSpanID 从Context提取SpanID（16位十六进制）
func ExtractSpanID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}
