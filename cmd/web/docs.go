//go:generate swag init -g docs.go -o ../../docs --parseDependency --parseInternal --dir .,../../internal/web,../../internal/viewer

package main

// @title snipdeck API
// @version 1.0
// @description Read-only JSON API of the snipdeck web frontend.
// @BasePath /
