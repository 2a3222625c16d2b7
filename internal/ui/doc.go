// Package ui contains the Bubble Tea program that renders the storefront
// account console. The Model focuses on message orchestration; dedicated
// helpers own navigation, input, forms, rendering, and backend sync.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update forwards messages to the active form or modal first (the
//     personal-details form, the address delete confirmation, or the invoice
//     preview). Otherwise the message is routed through a typed handler
//     registry so each tea.Msg is handled by a focused function.
//   - Key handling (navigation.go) maps keys onto controller transitions:
//     NavigateTo, ToggleMobileSidebar, BeginEdit, RequestAddressDelete and so
//     on. Filter helpers (input.go) keep text entry isolated from the event
//     loop.
//
// State ownership:
//   - The controller package owns the view state: active section, sidebar
//     flag, edit draft, pending deletion and open order.
//   - Cursor, filter and viewport state of the sidebar and list sections lives
//     in internal/ui/state.List.
//   - Service calls run through internal/ui/command so they never block the
//     event loop; their results come back as messages and are applied to the
//     controller on the loop.
//
// Backend interactions:
//   - A backend.Watcher polls the account services; Update waits for its
//     events and hands them to applyBackendEvent, which refreshes the stores
//     through the dispatcher and rebuilds any lists that depend on them.
package ui
