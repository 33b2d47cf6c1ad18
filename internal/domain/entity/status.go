package entity

// Action acción de fila sobre una persona o un producto.
type Action string

const (
	ActionEdit       Action = "edit"
	ActionDeactivate Action = "deactivate"
	ActionDelete     Action = "delete"
	ActionActivate   Action = "activate"
)

// AllowedActions acciones permitidas según el estatus actual:
// activo -> editar o desactivar; inactivo -> eliminar o reactivar.
func AllowedActions(active bool) []Action {
	if active {
		return []Action{ActionEdit, ActionDeactivate}
	}
	return []Action{ActionDelete, ActionActivate}
}

// IsActionAllowed indica si action está permitida para el estatus dado.
func IsActionAllowed(active bool, action Action) bool {
	for _, a := range AllowedActions(active) {
		if a == action {
			return true
		}
	}
	return false
}

// StatusLabel texto mostrado en el chip de estatus.
func StatusLabel(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}
