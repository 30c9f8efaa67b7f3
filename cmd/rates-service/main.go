// cmd/rates-service/main.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"minorder/internal/pkg/bootstrap"
)

const serviceName = "rates-service"

var tracer trace.Tracer

// 演示用的静态汇率表。真实部署会换成对接外部汇率供应商的实现。
var rates = map[string]float64{
	"USD/EUR": 0.92,
	"EUR/USD": 1.09,
	"USD/CNY": 7.10,
	"CNY/USD": 0.141,
	"EUR/CNY": 7.72,
	"CNY/EUR": 0.13,
}

func main() {
	bootstrap.Init()

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        bootstrap.GetCurrentConfig().App.Rates.Port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			tracer = otel.Tracer(serviceName)
			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			appCtx.Mux.HandleFunc("/get_rate", handleGetRate)
		},
	})
}

func handleGetRate(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	_, span := tracer.Start(ctx, "rates-service.GetRate")
	defer span.End()

	from := strings.ToUpper(r.URL.Query().Get("from"))
	to := strings.ToUpper(r.URL.Query().Get("to"))
	span.SetAttributes(
		attribute.String("currency.from", from),
		attribute.String("currency.to", to),
	)

	if from == "" || to == "" {
		http.Error(w, "missing from/to currency code", http.StatusBadRequest)
		return
	}
	if from == to {
		writeRate(w, 1.0)
		return
	}

	rate, ok := rates[from+"/"+to]
	if !ok {
		err := fmt.Errorf("no rate available for %s->%s", from, to)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeRate(w, rate)
}

func writeRate(w http.ResponseWriter, rate float64) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"rate": rate})
}
