package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/model"
)

func TestParseExtractsFunctions(t *testing.T) {
	content := `function computeTotal(items, taxRate) {
  const subtotal = items.reduce((sum, i) => sum + i.price, 0);
  return subtotal * (1 + taxRate);
}

async function loadItems(source: string): Promise<Item[]> {
  return fetch(source);
}`

	file := NewParser().Parse("src/totals.ts", content)

	require.Len(t, file.Metadata.Functions, 2)

	total := file.Metadata.Functions[0]
	assert.Equal(t, "computeTotal", total.Name)
	assert.Equal(t, 1, total.StartLine)
	assert.Equal(t, 4, total.EndLine)
	assert.False(t, total.IsAsync)
	require.Len(t, total.Parameters, 2)
	assert.Equal(t, "items", total.Parameters[0].Name)
	assert.Equal(t, "taxRate", total.Parameters[1].Name)

	load := file.Metadata.Functions[1]
	assert.Equal(t, "loadItems", load.Name)
	assert.True(t, load.IsAsync)
	assert.Equal(t, "Promise<Item[]>", load.ReturnType)
	require.Len(t, load.Parameters, 1)
	assert.Equal(t, "string", load.Parameters[0].Type)
}

func TestParseExtractsArrowFunctions(t *testing.T) {
	content := `export const formatName = (first, last) => {
  return first + ' ' + last;
};`

	file := NewParser().Parse("src/format.js", content)

	require.Len(t, file.Metadata.Functions, 1)
	assert.Equal(t, "formatName", file.Metadata.Functions[0].Name)
	assert.Len(t, file.Metadata.Functions[0].Parameters, 2)

	require.Len(t, file.Metadata.Exports, 1)
	assert.Equal(t, "formatName", file.Metadata.Exports[0].Name)
	assert.Equal(t, "const", file.Metadata.Exports[0].Kind)
}

func TestParseExtractsClassWithMembers(t *testing.T) {
	content := `export class OrderService extends BaseService implements Searchable {
  repo: OrderRepository;

  async findById(id: string): Promise<Order> {
    return this.repo.get(id);
  }

  private validate(order) {
    if (!order.id) {
      throw new Error('order id required');
    }
  }
}`

	file := NewParser().Parse("src/orders.ts", content)

	require.Len(t, file.Metadata.Classes, 1)
	cls := file.Metadata.Classes[0]
	assert.Equal(t, "OrderService", cls.Name)
	assert.Equal(t, "BaseService", cls.Extends)
	assert.Equal(t, []string{"Searchable"}, cls.Implements)

	require.Len(t, cls.Methods, 2)
	assert.Equal(t, "findById", cls.Methods[0].Name)
	assert.True(t, cls.Methods[0].IsAsync)
	assert.Equal(t, "validate", cls.Methods[1].Name)
	assert.True(t, cls.Methods[1].IsPrivate)

	require.Len(t, cls.Properties, 1)
	assert.Equal(t, "repo", cls.Properties[0].Name)
	assert.Equal(t, "OrderRepository", cls.Properties[0].Type)
}

func TestParseExtractsInterfaces(t *testing.T) {
	content := `interface SearchOptions {
  query: string;
  limit: number;
}`

	file := NewParser().Parse("src/search.ts", content)

	require.Len(t, file.Metadata.Interfaces, 1)
	iface := file.Metadata.Interfaces[0]
	assert.Equal(t, "SearchOptions", iface.Name)
	require.Len(t, iface.Properties, 2)
	assert.Equal(t, "query", iface.Properties[0].Name)
	assert.Equal(t, "string", iface.Properties[0].Type)
}

func TestParseExtractsImports(t *testing.T) {
	content := `import { readFile, writeFile } from 'fs';
import express from 'express';
import 'reflect-metadata';`

	file := NewParser().Parse("src/server.ts", content)

	require.Len(t, file.Metadata.Imports, 3)
	assert.Equal(t, "fs", file.Metadata.Imports[0].Source)
	assert.Equal(t, []string{"readFile", "writeFile"}, file.Metadata.Imports[0].Names)
	assert.Equal(t, "express", file.Metadata.Imports[1].Source)
	assert.Empty(t, file.Metadata.Imports[2].Names)
}

func TestParseDoesNotMistakeKeywordsForMethods(t *testing.T) {
	content := `class Filter {
  apply(items) {
    for (const item of items) {
      if (item.active) {
        keep(item);
      }
    }
    return items;
  }
}`

	file := NewParser().Parse("src/filter.js", content)

	require.Len(t, file.Metadata.Classes, 1)
	require.Len(t, file.Metadata.Classes[0].Methods, 1)
	assert.Equal(t, "apply", file.Metadata.Classes[0].Methods[0].Name)
}

func TestParseIsTotalOnMalformedInput(t *testing.T) {
	content := `function broken(a, b) {
  if (a > b) {
    return a;
  // missing closing braces`

	file := NewParser().Parse("src/broken.js", content)

	require.Len(t, file.Metadata.Functions, 1)
	assert.Equal(t, len(file.Lines), file.Metadata.Functions[0].EndLine)
}

func TestParseIgnoresBracesInStringsAndComments(t *testing.T) {
	content := `function render(template) {
  const open = "{";
  // stray } in a comment
  return template.replace(open, '');
}`

	file := NewParser().Parse("src/render.js", content)

	require.Len(t, file.Metadata.Functions, 1)
	assert.Equal(t, 5, file.Metadata.Functions[0].EndLine)
}

func TestParseParameterDefaultsAndRest(t *testing.T) {
	content := `function page(limit = 20, ...filters) {
  return query(limit, filters);
}`

	file := NewParser().Parse("src/page.js", content)

	require.Len(t, file.Metadata.Functions, 1)
	params := file.Metadata.Functions[0].Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "limit", params[0].Name)
	assert.Equal(t, "filters", params[1].Name)
}

func TestSliceClampsOutOfRangeBounds(t *testing.T) {
	file := &model.ParsedFile{Lines: []string{"a", "b", "c"}}

	assert.Equal(t, "a\nb\nc", file.Slice(-5, 99))
	assert.Equal(t, "b", file.Slice(2, 2))
	assert.Equal(t, "", file.Slice(3, 1))
}

func TestLanguageForExt(t *testing.T) {
	assert.Equal(t, "typescript", languageForExt(".ts"))
	assert.Equal(t, "typescript", languageForExt(".TSX"))
	assert.Equal(t, "javascript", languageForExt(".mjs"))
	assert.Equal(t, "", languageForExt(".py"))
}
