package cli

import (
	"context"
	"encoding/json"
	"os"
)

// ShowKeys lists the data keys stored under the current identity.
func (a *App) ShowKeys(ctx context.Context) error {
	keys, err := a.store.ListKeys(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to list keys", "error", err)
		return err
	}
	if len(keys) == 0 {
		printlnFn("No stored keys")
		return nil
	}
	for _, k := range keys {
		printlnFn(k)
	}
	return nil
}

// GetValue prompts for a key and prints the raw stored value.
func (a *App) GetValue(ctx context.Context) error {
	key, err := GetSimpleText(a.reader, "Key", os.Stdout)
	if err != nil {
		return err
	}

	var value json.RawMessage
	found, err := a.store.Load(ctx, key, &value)
	if err != nil {
		a.log.Error(ctx, "failed to load value", "error", err)
		return err
	}
	if !found {
		printlnFn("No data")
		return nil
	}
	printlnFn(string(value))
	return nil
}

// SetValue prompts for a key and a value and stores it as a plain string.
func (a *App) SetValue(ctx context.Context) error {
	key, err := GetSimpleText(a.reader, "Key", os.Stdout)
	if err != nil {
		return err
	}
	value, err := GetSimpleText(a.reader, "Value", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.Store(ctx, key, value); err != nil {
		a.log.Error(ctx, "failed to store value", "error", err)
		return err
	}
	printlnFn("Stored", key)
	return nil
}

// DelValue prompts for a key and removes it.
func (a *App) DelValue(ctx context.Context) error {
	key, err := GetSimpleText(a.reader, "Key", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.Remove(ctx, key); err != nil {
		a.log.Error(ctx, "failed to remove value", "error", err)
		return err
	}
	printlnFn("Removed", key)
	return nil
}
