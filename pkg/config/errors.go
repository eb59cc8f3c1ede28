package config

import (
	"fmt"
	"reflect"
)

// InvalidConfigError é retornado quando LoadEnv recebe algo que não é um
// ponteiro para struct.
type InvalidConfigError struct {
	Value reflect.Type
}

func (e *InvalidConfigError) Error() string {
	if e.Value == nil {
		return "config: target must be a pointer to struct, got nil"
	}
	if e.Value.Kind() != reflect.Ptr {
		return fmt.Sprintf("config: target must be a pointer to struct, got %s", e.Value.Kind())
	}
	return fmt.Sprintf("config: target must be a pointer to struct, got pointer to %s", e.Value.Elem().Kind())
}

// FieldError encapsula a falha de conversão de uma variável de ambiente.
type FieldError struct {
	FieldName string
	EnvVar    string
	Value     string
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: error setting field %s from env %s=%s: %v",
		e.FieldName, e.EnvVar, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError é retornado para campos (map, slice, interface) que
// não podem ser preenchidos por variável de ambiente.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("config: unsupported type %s", e.Type)
}
