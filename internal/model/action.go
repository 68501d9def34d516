package model

type Action string

const (
	ActionAddLine          Action = "ADD_LINE"
	ActionRemoveLine       Action = "REMOVE_LINE"
	ActionUpdateQuantity   Action = "UPDATE_QUANTITY"
	ActionUpdatePrice      Action = "UPDATE_PRICE"
	ActionCreateOrder      Action = "CREATE_ORDER"
	ActionUpdateOrder      Action = "UPDATE_ORDER"
	ActionTransitionOrder  Action = "TRANSITION_ORDER"
	ActionDeleteOrder      Action = "DELETE_ORDER"
	ActionCreateInvoice    Action = "CREATE_INVOICE"
	ActionEditInvoice      Action = "EDIT_INVOICE"
	ActionDeleteInvoice    Action = "DELETE_INVOICE"
	ActionSetPaymentStatus Action = "SET_PAYMENT_STATUS"
)

// IsLineAction reports actions that mutate a single line item.
func (a Action) IsLineAction() bool {
	switch a {
	case ActionAddLine, ActionRemoveLine, ActionUpdateQuantity, ActionUpdatePrice:
		return true
	default:
		return false
	}
}
