package router

import (
	"context"
	"fmt"

	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
)

const (
	HelloText             = "Hello from EvenHub! This is a simple demo app exploring the G2 SDK."
	DeviceInfoMissingText = "No device info available"
	DeviceInfoErrorText   = "Error getting device info"
	AudioTestText         = "Audio test: Long-press to start mic.\n(audioControl not yet wired)"
)

// ContentFunc produces the info panel text for a selected list item.
type ContentFunc func(ctx context.Context, b bridge.Bridge) string

// Action is one row of the list menu.
type Action struct {
	Label   string
	Content ContentFunc
}

// Actions maps list indexes to panel content, in display order.
type Actions []Action

// DefaultActions returns the menu shown on the glasses.
func DefaultActions() Actions {
	return Actions{
		{Label: "Hello World", Content: staticContent(HelloText)},
		{Label: "Device Info", Content: deviceInfoContent},
		{Label: "Audio Test", Content: staticContent(AudioTestText)},
	}
}

// Labels returns the list item names.
func (a Actions) Labels() []string {
	labels := make([]string, len(a))
	for i, action := range a {
		labels[i] = action.Label
	}
	return labels
}

// Label returns the label at index, if any.
func (a Actions) Label(index int) (string, bool) {
	if index < 0 || index >= len(a) || a[index].Content == nil {
		return "", false
	}
	return a[index].Label, true
}

// Content resolves the panel text for index. Indexes outside the table get a
// generic selection message.
func (a Actions) Content(ctx context.Context, b bridge.Bridge, index int) string {
	label, ok := a.Label(index)
	if !ok {
		events.Hub.Action(index, "")
		return SelectedText(index)
	}
	events.Hub.Action(index, label)
	return a[index].Content(ctx, b)
}

// SelectedText is the content for an item without a dedicated action.
func SelectedText(index int) string {
	return fmt.Sprintf("Selected item %d", index)
}

// FormatDeviceInfo renders the multi-line device summary.
func FormatDeviceInfo(info bridge.DeviceInfo) string {
	return fmt.Sprintf("Model: %s\nSN: %s\nBattery: %d%%\nWearing: %t",
		info.Model, info.SerialNumber, info.Status.BatteryLevel, info.Status.IsWearing)
}

func staticContent(text string) ContentFunc {
	return func(context.Context, bridge.Bridge) string { return text }
}

func deviceInfoContent(ctx context.Context, b bridge.Bridge) string {
	info, err := b.DeviceInfo(ctx)
	events.Bridge.Query("getDeviceInfo", err)
	if err != nil {
		return DeviceInfoErrorText
	}
	if info == nil {
		return DeviceInfoMissingText
	}
	return FormatDeviceInfo(*info)
}
