// Package ui renders terminal progress for directory expansion.
package ui
