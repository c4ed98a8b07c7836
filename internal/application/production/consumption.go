package production

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/logger"
)

// Razones de los movimientos generados por el motor.
const (
	reasonProduction        = "Producción registrada"
	reasonConsumption       = "Consumo producción"
	reasonReverseProduction = "Reversión de producción"
	reasonReverseConsume    = "Reversión consumo producción"
)

// ConsumptionLine resultado de la deducción (o devolución) de un material.
type ConsumptionLine struct {
	MaterialID string
	Quantity   decimal.Decimal
	Err        error
}

// ConsumptionReport detalla qué escrituras del motor se aplicaron. Cuando hay
// fallos parciales el reporte nombra exactamente qué materiales quedaron sin
// descontar para que un operador pueda reconciliar a mano; el motor nunca se
// traga la diferencia.
type ConsumptionReport struct {
	FinishedGoodApplied bool
	HasRecipe           bool
	Lines               []ConsumptionLine
}

// FailedLines devuelve las líneas que no pudieron aplicarse.
func (r *ConsumptionReport) FailedLines() []ConsumptionLine {
	var failed []ConsumptionLine
	for _, ln := range r.Lines {
		if ln.Err != nil {
			failed = append(failed, ln)
		}
	}
	return failed
}

// FullyApplied indica que el producto terminado y todas las líneas se
// aplicaron.
func (r *ConsumptionReport) FullyApplied() bool {
	return r.FinishedGoodApplied && len(r.FailedLines()) == 0
}

// lineError resume las líneas fallidas en un error accionable.
func (r *ConsumptionReport) lineError() error {
	failed := r.FailedLines()
	if len(failed) == 0 {
		return nil
	}
	ids := make([]string, 0, len(failed))
	for _, ln := range failed {
		ids = append(ids, fmt.Sprintf("%s (%s): %v", ln.MaterialID, ln.Quantity.String(), ln.Err))
	}
	return fmt.Errorf("materiales sin aplicar: %s", strings.Join(ids, "; "))
}

// Engine es el motor de consumo de producción. Apply sube el producto
// terminado y baja cada materia prima de la receta; Reverse es el espejo
// exacto. Cada escritura es una llamada independiente al almacén: el motor
// espera a que todas terminen y reporta línea por línea.
type Engine struct {
	ledger          *ledger.StockLedger
	resolver        *RecipeResolver
	consumptionRepo repository.ProductionConsumptionRepository
	log             *logger.Logger
}

// NewEngine construye el motor.
func NewEngine(
	stockLedger *ledger.StockLedger,
	resolver *RecipeResolver,
	consumptionRepo repository.ProductionConsumptionRepository,
	log *logger.Logger,
) *Engine {
	return &Engine{ledger: stockLedger, resolver: resolver, consumptionRepo: consumptionRepo, log: log}
}

// Apply registra la producción de quantity unidades del artículo
// productInventoryID a nombre del registro logID:
//
//  1. Resuelve el producto por su artículo terminado; si no hay producto
//     definido, advierte y solo aplica el paso 2 (producción ad-hoc).
//  2. Entrada de quantity sobre el producto terminado.
//  3. Por cada línea de receta, Salida de quantityPerUnit × quantity. Las
//     deducciones son independientes y se emiten en paralelo; el motor espera
//     a que todas terminen.
//  4. Foto del consumo realmente aplicado, para que la reversión sea exacta
//     aunque la receta cambie después.
//
// Si el paso 2 falla no se intenta nada más. Fallos parciales del paso 3
// dejan el sistema inconsistente (el almacén no ofrece transacción entre
// filas): el reporte y el error nombran cada material sin descontar.
func (e *Engine) Apply(ctx context.Context, logID, productInventoryID string, quantity decimal.Decimal) (*ConsumptionReport, error) {
	report := &ConsumptionReport{}

	_, lines, err := e.resolver.ResolveByInventory(ctx, productInventoryID)
	if err != nil {
		return report, err
	}
	report.HasRecipe = len(lines) > 0
	if !report.HasRecipe {
		e.log.Warn().Str("inventory_id", productInventoryID).
			Msg("sin receta definida: solo se actualiza el producto terminado")
	}

	if _, err := e.ledger.ApplyDelta(ctx, ledger.DeltaInput{
		InventoryID: productInventoryID,
		Delta:       quantity,
		Reason:      reasonProduction,
	}); err != nil {
		return report, fmt.Errorf("entrada de producto terminado: %w", err)
	}
	report.FinishedGoodApplied = true

	report.Lines = e.applyLines(ctx, lines, quantity, decimal.NewFromInt(-1), reasonConsumption)

	e.snapshotConsumption(logID, report)

	return report, report.lineError()
}

// Reverse es el espejo exacto de Apply: Salida del producto terminado y
// Entrada de cada material consumido. Usa la foto de consumo guardada por
// Apply cuando existe; si no hay foto (registros previos a la foto), re-
// resuelve la receta vigente, con la salvedad de que una receta editada
// entremedio haría la reversión inexacta.
func (e *Engine) Reverse(ctx context.Context, logID, productInventoryID string, quantity decimal.Decimal) (*ConsumptionReport, error) {
	report := &ConsumptionReport{}

	consumed, err := e.consumptionRepo.ListByLog(logID)
	if err != nil {
		return report, err
	}

	var lines []RecipeLine
	if len(consumed) > 0 {
		report.HasRecipe = true
	} else {
		_, resolved, err := e.resolver.ResolveByInventory(ctx, productInventoryID)
		if err != nil {
			return report, err
		}
		lines = resolved
		report.HasRecipe = len(lines) > 0
		if report.HasRecipe {
			e.log.Warn().Str("log_id", logID).
				Msg("sin foto de consumo: la reversión usa la receta vigente")
		}
	}

	if _, err := e.ledger.ApplyDelta(ctx, ledger.DeltaInput{
		InventoryID: productInventoryID,
		Delta:       quantity.Neg(),
		Reason:      reasonReverseProduction,
	}); err != nil {
		return report, fmt.Errorf("salida de producto terminado: %w", err)
	}
	report.FinishedGoodApplied = true

	if len(consumed) > 0 {
		// Devolver exactamente lo consumido según la foto.
		report.Lines = e.applySnapshotReturns(ctx, consumed)
	} else {
		report.Lines = e.applyLines(ctx, lines, quantity, decimal.NewFromInt(1), reasonReverseConsume)
	}

	return report, report.lineError()
}

// applyLines emite una escritura por línea en paralelo y espera a todas.
// sign es -1 para consumo (Salida) y +1 para devolución (Entrada).
func (e *Engine) applyLines(ctx context.Context, lines []RecipeLine, quantity, sign decimal.Decimal, reason string) []ConsumptionLine {
	if len(lines) == 0 {
		return nil
	}
	results := make(chan ConsumptionLine, len(lines))
	for _, line := range lines {
		go func(ln RecipeLine) {
			required := ln.QuantityPerUnit.Mul(quantity)
			_, err := e.ledger.ApplyDelta(ctx, ledger.DeltaInput{
				InventoryID: ln.RawMaterialInventoryID,
				Delta:       required.Mul(sign),
				Reason:      reason,
			})
			results <- ConsumptionLine{MaterialID: ln.RawMaterialInventoryID, Quantity: required, Err: err}
		}(line)
	}
	out := make([]ConsumptionLine, 0, len(lines))
	for range lines {
		out = append(out, <-results)
	}
	return out
}

// applySnapshotReturns devuelve al stock las cantidades exactas de la foto.
func (e *Engine) applySnapshotReturns(ctx context.Context, consumed []*entity.ProductionConsumption) []ConsumptionLine {
	results := make(chan ConsumptionLine, len(consumed))
	for _, row := range consumed {
		go func(c *entity.ProductionConsumption) {
			_, err := e.ledger.ApplyDelta(ctx, ledger.DeltaInput{
				InventoryID: c.RawMaterialInventoryID,
				Delta:       c.QuantityConsumed,
				Reason:      reasonReverseConsume,
			})
			results <- ConsumptionLine{MaterialID: c.RawMaterialInventoryID, Quantity: c.QuantityConsumed, Err: err}
		}(row)
	}
	out := make([]ConsumptionLine, 0, len(consumed))
	for range consumed {
		out = append(out, <-results)
	}
	return out
}

// snapshotConsumption persiste la foto del consumo aplicado con éxito. El
// fallo de la foto no invalida la operación: la reversión caerá al fallback
// de receta vigente.
func (e *Engine) snapshotConsumption(logID string, report *ConsumptionReport) {
	var rows []*entity.ProductionConsumption
	for _, ln := range report.Lines {
		if ln.Err != nil {
			continue
		}
		rows = append(rows, &entity.ProductionConsumption{
			ID:                     uuid.New().String(),
			ProductionLogID:        logID,
			RawMaterialInventoryID: ln.MaterialID,
			QuantityConsumed:       ln.Quantity,
		})
	}
	if len(rows) == 0 {
		return
	}
	if err := e.consumptionRepo.CreateBatch(rows); err != nil {
		e.log.Warn().Str("log_id", logID).Err(err).
			Msg("no se pudo guardar la foto de consumo; la reversión usará la receta vigente")
	}
}
