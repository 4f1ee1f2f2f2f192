package inventory

import "github.com/jhoicas/inventario-ledger/pkg/config"

// LedgerPolicy decide qué operaciones del ledger pueden dejar stock negativo.
// El borrado de un movimiento siempre se rechaza si dejaría stock negativo en un producto activo.
type LedgerPolicy struct {
	// StrictCreate rechaza altas que dejarían stock negativo. Desactivado: se permite sobreventa.
	StrictCreate bool
	// StrictUpdate rechaza ediciones que dejarían stock negativo en cualquiera de los dos productos.
	StrictUpdate bool
}

// PolicyFromConfig toma la política de la sección LEDGER_* de la configuración.
func PolicyFromConfig(cfg config.LedgerConfig) LedgerPolicy {
	return LedgerPolicy{StrictCreate: cfg.StrictCreate, StrictUpdate: cfg.StrictUpdate}
}
