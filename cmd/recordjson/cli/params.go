// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// A command's flags are the tagged fields of its params struct. Groups
// of flags that several commands share are structs embedded in it:
// this package's [ConfigFlags], [SchemaFlags], and [JSONOutput], and
// the render package's InputFlags and OutputFlags.
//
//	type digestParams struct {
//	    render.InputFlags                 // --type, --input, --set, --config, --schema, ...
//	    cli.JSONOutput                    // --json
//	    Short bool `flag:"short" desc:"print the short form"`
//	}
//
// Tags on a field:
//
//	flag:"name" or flag:"name,n"  long name and optional one-letter shorthand
//	desc:"text"                   help text
//	default:"value"               default, parsed for the field's type
//
// Fields may be string, bool, int, or []string. A []string flag is
// repeatable and keeps each value whole, commas included, so
// "--set tags=a,b" arrives as one assignment; its default is
// comma-separated.

// FlagBinder is implemented by flag groups that register their flags
// themselves instead of through tags. [ConfigFlags] is one.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a flag set bound to params, a pointer to a
// params struct. Flags are listed in declaration order. A params
// struct that cannot be bound is a bug in the command, so it panics.
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SortFlags = false
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every tagged field of
// params, descending into embedded groups. Two fields claiming the same
// flag name or shorthand are an error naming both.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	binder := &flagBinding{flagSet: flagSet, owners: make(map[string]string)}
	return binder.bindStruct(value.Elem(), "")
}

// flagBinding walks one params struct. owners maps each claimed long
// name and shorthand to the field path that claimed it.
type flagBinding struct {
	flagSet *pflag.FlagSet
	owners  map[string]string
}

func (b *flagBinding) bindStruct(group reflect.Value, prefix string) error {
	groupType := group.Type()
	for index := 0; index < groupType.NumField(); index++ {
		field := groupType.Field(index)
		value := group.Field(index)
		path := prefix + field.Name

		if field.Type.Kind() == reflect.Struct && field.IsExported() {
			if custom, ok := value.Addr().Interface().(FlagBinder); ok {
				if err := b.bindCustom(custom, path); err != nil {
					return err
				}
				continue
			}
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if !field.IsExported() {
				return fmt.Errorf("embedded %s: type must be exported", field.Name)
			}
			if err := b.bindStruct(value, path+"."); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		name, shorthand := parseFlagTag(tag)
		if err := b.claim(path, name, shorthand); err != nil {
			return err
		}
		if err := bindField(b.flagSet, value, name, shorthand, field.Tag.Get("desc"), field.Tag.Get("default")); err != nil {
			return fmt.Errorf("field %s: %w", path, err)
		}
	}
	return nil
}

// bindCustom lets a FlagBinder register its flags on a scratch set
// first, so its names go through the same collision check.
func (b *flagBinding) bindCustom(custom FlagBinder, path string) error {
	scratch := pflag.NewFlagSet(path, pflag.ContinueOnError)
	custom.AddFlags(scratch)

	var err error
	scratch.VisitAll(func(flag *pflag.Flag) {
		if err == nil {
			err = b.claim(path, flag.Name, flag.Shorthand)
		}
	})
	if err != nil {
		return err
	}
	b.flagSet.AddFlagSet(scratch)
	return nil
}

func (b *flagBinding) claim(path, name, shorthand string) error {
	keys := []string{"--" + name}
	if shorthand != "" {
		keys = append(keys, "-"+shorthand)
	}
	for _, key := range keys {
		if owner, taken := b.owners[key]; taken {
			return fmt.Errorf("flag %s is claimed by both %s and %s", key, owner, path)
		}
	}
	for _, key := range keys {
		b.owners[key] = path
	}
	return nil
}

// parseFlagTag splits "output,o" into ("output", "o").
func parseFlagTag(tag string) (name, shorthand string) {
	name, shorthand, _ = strings.Cut(tag, ",")
	return name, shorthand
}

func bindField(flagSet *pflag.FlagSet, value reflect.Value, name, shorthand, usage, fallback string) error {
	switch target := value.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, fallback, usage)
	case *bool:
		initial, err := parseDefault(fallback, strconv.ParseBool)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.BoolVarP(target, name, shorthand, initial, usage)
	case *int:
		initial, err := parseDefault(fallback, strconv.Atoi)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.IntVarP(target, name, shorthand, initial, usage)
	case *[]string:
		var initial []string
		if fallback != "" {
			initial = strings.Split(fallback, ",")
		}
		flagSet.StringArrayVarP(target, name, shorthand, initial, usage)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", value.Type(), name)
	}
	return nil
}

// parseDefault parses a default tag; an absent tag is the zero value.
func parseDefault[T any](text string, parse func(string) (T, error)) (T, error) {
	var zero T
	if text == "" {
		return zero, nil
	}
	return parse(text)
}
