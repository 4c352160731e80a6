//go:build strict
// +build strict

package nes

const buildPolicy = Strict
