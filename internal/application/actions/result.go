package actions

// Result es el resultado de una acción de datos: Success con el dato o
// Failure con un mensaje para mostrar al usuario. Nunca ambos.
type Result[T any] struct {
	ok      bool
	data    T
	message string
	fields  map[string]string
}

// Success construye un resultado exitoso.
func Success[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Failure construye un resultado fallido con un mensaje legible.
func Failure[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// OK informa si la acción terminó bien.
func (r Result[T]) OK() bool { return r.ok }

// Data devuelve el dato (valor cero si falló).
func (r Result[T]) Data() T { return r.data }

// Message devuelve el mensaje de error ("" si fue exitosa).
func (r Result[T]) Message() string { return r.message }

// FieldErrors errores de validación por campo del formulario, si los hubo.
func (r Result[T]) FieldErrors() map[string]string { return r.fields }

func failureWithFields[T any](message string, fields map[string]string) Result[T] {
	return Result[T]{message: message, fields: fields}
}
