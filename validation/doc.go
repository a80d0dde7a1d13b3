// Package validation validates patchkit configuration structs using
// go-playground/validator struct tags, reporting failures as coded
// configuration errors.
package validation
