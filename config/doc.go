// Package config provides configuration loading and validation for patchkit
// applications.
//
// It uses Viper to load configuration from YAML files, layers a .env file
// and PATCHKIT_-prefixed environment variables on top, and unmarshals the
// result into an explicit config struct. The original system configured
// batch size and model path through process-wide flags; here every knob is a
// struct field passed to the component that needs it.
package config
