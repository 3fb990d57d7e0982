package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeContains(t *testing.T) {
	tests := []struct {
		scope string
		pkg   string
		want  bool
	}{
		{"", "anything/at/all", true},
		{"", "", true},
		{"a.b", "a.b.c", true},
		{"a.b", "a.b", true},
		{"a.b", "a.bc", false},
		{"a.b.c", "a.b", false},
		{"github.com/acme/shop", "github.com/acme/shop/internal/orders", true},
		{"github.com/acme/shop", "github.com/acme/shopfront", false},
		{"github.com/acme/shop/internal", "github.com/acme/other", false},
		{"example.com/app", "example.com/app.v2", false},
		{"example.com/app", "example.com/app/v2", true},
		{"example.com", "example.com/app", true},
		{"example.com", "example.com.cn", true},
	}

	for _, tt := range tests {
		t.Run(tt.scope+"->"+tt.pkg, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeContains(tt.scope, tt.pkg))
		})
	}
}

func TestModuleAcceptDefinition(t *testing.T) {
	noScan := NewModule("Plain", "app")
	assert.False(t, noScan.AcceptDefinition("app"))

	catchAll := NewModule("All", "app")
	catchAll.ComponentScan = &ComponentScan{}
	assert.True(t, catchAll.ComponentScan.IsCatchAll())
	assert.True(t, catchAll.AcceptDefinition("x.y.z"))

	scoped := NewModule("Orders", "app")
	scoped.ComponentScan = &ComponentScan{PackageName: "app/orders"}
	assert.True(t, scoped.AcceptDefinition("app/orders/store"))
	assert.False(t, scoped.AcceptDefinition("app/billing"))
}

func TestModuleAddDefinitionDeduplicates(t *testing.T) {
	module := NewModule("Orders", "app")

	first := &Definition{PackageName: "app/orders", Label: "Store", Parameters: []*Parameter{NewParameter("db", "*sql.DB")}}
	same := &Definition{PackageName: "app/orders", Label: "Store", Keyword: KeywordFactory, Parameters: []*Parameter{NewParameter("db", "*sql.DB")}}
	other := &Definition{PackageName: "app/orders", Label: "Store", Parameters: []*Parameter{NewParameter("conn", "*sql.DB")}}

	assert.True(t, module.AddDefinition(first))
	assert.False(t, module.AddDefinition(same))
	assert.True(t, module.AddDefinition(other))
	assert.Len(t, module.Definitions, 2)
}

func TestModuleIdentity(t *testing.T) {
	module := NewModule("Orders", "github.com/acme/shop")
	assert.Equal(t, "github.com/acme/shop.Orders", module.ID())
	assert.Equal(t, "Orders", module.String())

	def := NewDefaultModule("defaultModule", "")
	assert.True(t, def.IsDefault)
	assert.Equal(t, "defaultModule", def.ID())
}

func TestModuleAllDefinitions(t *testing.T) {
	module := NewModule("Orders", "app")
	own := &Definition{Label: "Clock", Receiver: "Orders"}
	routed := &Definition{Label: "Store"}
	module.Own = append(module.Own, own)
	module.AddDefinition(routed)

	assert.Equal(t, []*Definition{own, routed}, module.AllDefinitions())
}

func TestDefinitionEqualIgnoresBoundDefaults(t *testing.T) {
	a := &Definition{PackageName: "p", Label: "L", Parameters: []*Parameter{NewPropertyParameter("port", "int", "server.port")}}
	b := &Definition{PackageName: "p", Label: "L", Parameters: []*Parameter{NewPropertyParameter("port", "int", "server.port")}}
	b.Parameters[0].BindDefault("p.DefaultPort")

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(&Definition{PackageName: "q", Label: "L"}))

	factory := &Definition{PackageName: "p", Label: "L", Keyword: KeywordFactory, Shape: FunctionShape, Parameters: a.Parameters}
	assert.True(t, a.Equal(factory))
}

func TestDefinitionDescriptions(t *testing.T) {
	def := &Definition{PackageName: "app/orders", Label: "NewStore", Keyword: KeywordScoped, Shape: FunctionShape}
	assert.Equal(t, "app/orders.NewStore", def.QualifiedName())
	assert.Equal(t, "scoped app/orders.NewStore(function)", def.String())
	assert.Equal(t, "Store", (&Definition{Label: "Store"}).QualifiedName())
}

func TestParameterBindDefault(t *testing.T) {
	prop := NewPropertyParameter("port", "int", "server.port")
	assert.True(t, prop.IsProperty())
	assert.False(t, prop.HasDefault())

	assert.True(t, prop.BindDefault("app.DefaultPort"))
	assert.False(t, prop.BindDefault("app.OtherPort"))
	assert.Equal(t, "app.DefaultPort", prop.DefaultField)

	ordinary := NewParameter("db", "*sql.DB")
	assert.False(t, ordinary.BindDefault("app.DefaultPort"))
	assert.Empty(t, ordinary.DefaultField)

	assert.False(t, NewPropertyParameter("x", "int", "k").BindDefault(""))
}

func TestPropertyParameters(t *testing.T) {
	port := NewPropertyParameter("port", "int", "server.port")
	def := &Definition{Parameters: []*Parameter{NewParameter("db", "*sql.DB"), port}}
	assert.Equal(t, []*Parameter{port}, def.PropertyParameters())
}
