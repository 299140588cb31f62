package options_test

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/qcli/internal/options"
)

func TestAddOption(t *testing.T) {
	t.Parallel()

	t.Run("RegistersLongAndAliasKeys", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		reg := newRegistry(nil)
		opt := reg.AddOption("aaa", 'a', options.ValueRequired)

		g.Expect(reg.Lookup("--aaa")).To(BeIdenticalTo(opt))
		g.Expect(reg.Lookup("-a")).To(BeIdenticalTo(opt))
		g.Expect(reg.Lookup("--no-aaa")).To(BeNil())
		g.Expect(reg.Collisions()).To(BeEmpty())
	})

	t.Run("NegativeSwitchSynthesizesPlainSwitch", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		reg := newRegistry(nil)
		reg.AddOption("aaa", 0, options.Switch|options.NegativeSwitch)

		neg := reg.Lookup("--no-aaa")
		g.Expect(neg).ToNot(BeNil())
		g.Expect(neg.Name).To(Equal("aaa"))
		g.Expect(neg.Flags).To(Equal(options.Switch))
		g.Expect(neg.IsNegative()).To(BeTrue())
		g.Expect(neg.Key()).To(Equal("--no-aaa"))
	})

	t.Run("CollisionIsReportedAndLastWriterWins", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		var errOut bytes.Buffer

		reg := newRegistry(&errOut)

		reg.BeginGroup("grp")
		first := reg.AddOption("aaa", 0, options.Switch)
		reg.EndGroup()

		second := reg.AddOption("aaa", 0, options.ValueRequired)

		g.Expect(reg.Lookup("--aaa")).To(BeIdenticalTo(second))
		g.Expect(reg.Group("grp").Has(first)).To(BeTrue())
		g.Expect(reg.Group("grp").Has(second)).To(BeFalse())
		g.Expect(reg.Collisions()).To(ConsistOf(
			options.Collision{Kind: options.CollisionOption, Key: "--aaa"}))
		g.Expect(errOut.String()).To(ContainSubstring("Replacing existing option --aaa!"))

		var collisionErr *options.CollisionError

		g.Expect(errors.As(reg.Err(), &collisionErr)).To(BeTrue())
		g.Expect(collisionErr.Error()).To(ContainSubstring(`"--aaa"`))
	})

	t.Run("AliasCollisionIsReported", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		reg := newRegistry(nil)
		reg.AddOption("aaa", 'x', options.Switch)
		bbb := reg.AddOption("bbb", 'x', options.Switch)

		g.Expect(reg.Lookup("-x")).To(BeIdenticalTo(bbb))
		g.Expect(reg.Collisions()).To(HaveLen(1))
	})

	t.Run("ReplacedDefinitionIsNotCurrent", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		reg := newRegistry(nil)
		first := reg.AddOption("aaa", 0, options.Switch|options.NegativeSwitch)
		second := reg.AddOption("aaa", 0, options.ValueRequired)

		g.Expect(reg.IsCurrent(first)).To(BeFalse())
		g.Expect(reg.IsCurrent(second)).To(BeTrue())
		g.Expect(reg.IsCurrent(reg.Lookup("--no-aaa"))).To(BeTrue())
		g.Expect(reg.IsCurrent(nil)).To(BeFalse())
		g.Expect(reg.Options()).To(Equal([]*options.Option{first, second}))
	})

	t.Run("CleanRegistryHasNoError", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		reg := newRegistry(nil)
		reg.AddOption("aaa", 'a', options.Switch)

		g.Expect(reg.Err()).ToNot(HaveOccurred())
	})
}

func TestFlags(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect((options.Switch | options.NegativeSwitch).Arity()).To(Equal(options.Switch))
	g.Expect((options.ValueRequired | options.Array).Arity()).To(Equal(options.ValueRequired))
	g.Expect((options.ValueOptional | options.Array).Has(options.Array)).To(BeTrue())
	g.Expect((options.Switch | options.NegativeSwitch).String()).To(Equal("switch|negatable"))
	g.Expect((options.ValueRequired | options.Array).String()).To(Equal("required|array"))
}

func TestGroups(t *testing.T) {
	t.Parallel()

	t.Run("MembersAreRegisteredBetweenBeginAndEnd", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		reg := newRegistry(nil)
		outside := reg.AddOption("outside", 0, options.Switch)

		grp := reg.BeginGroup("build")
		inside := reg.AddOption("inside", 0, options.Switch|options.NegativeSwitch)
		g.Expect(reg.CurrentGroup()).To(BeIdenticalTo(grp))
		reg.EndGroup()

		g.Expect(reg.CurrentGroup()).To(BeNil())
		g.Expect(grp.Has(inside)).To(BeTrue())
		g.Expect(grp.Has(reg.Lookup("--no-inside"))).To(BeTrue())
		g.Expect(grp.Has(outside)).To(BeFalse())
		g.Expect(reg.IsGroupName("build")).To(BeTrue())
		g.Expect(reg.IsGroupName("--build")).To(BeFalse())
	})

	t.Run("ReenteringReusesGroup", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		var errOut bytes.Buffer

		reg := newRegistry(&errOut)

		first := reg.BeginGroup("build")
		a := reg.AddOption("a", 0, options.Switch)
		reg.EndGroup()

		second := reg.BeginGroup("build")
		b := reg.AddOption("b", 0, options.Switch)
		reg.EndGroup()

		g.Expect(second).To(BeIdenticalTo(first))
		g.Expect(first.Members()).To(Equal([]*options.Option{a, b}))
		g.Expect(reg.Groups()).To(HaveLen(1))
		g.Expect(reg.Collisions()).To(ConsistOf(
			options.Collision{Kind: options.CollisionGroup, Key: "build"}))
		g.Expect(errOut.String()).To(ContainSubstring("Group build is already registered!"))
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	reg := newRegistry(nil)
	aaa := reg.AddOption("aaa", 'a', options.ValueRequired)
	reg.BeginGroup("grp")
	reg.EndGroup()

	cases := []struct {
		token    string
		lookup   options.Lookup
		option   *options.Option
		value    string
		hasValue bool
	}{
		{"--", options.LookupEndOfOptions, nil, "", false},
		{"-", options.LookupEndOfOptions, nil, "", false},
		{"grp", options.LookupGroup, nil, "", false},
		{"foo", options.LookupArgument, nil, "foo", false},
		{"--aaa", options.LookupOption, aaa, "", false},
		{"-a", options.LookupOption, aaa, "", false},
		{"--aaa=", options.LookupOption, aaa, "", true},
		{"--aaa=x=y", options.LookupOption, aaa, "x=y", true},
		{"-a=foo", options.LookupOption, aaa, "foo", true},
		{"-aaa", options.LookupUnknown, nil, "", false},
		{"-aaa=foo", options.LookupUnknown, nil, "", false},
		{"--a", options.LookupUnknown, nil, "", false},
		{"--a=foo", options.LookupUnknown, nil, "", false},
		{"---aaa", options.LookupUnknown, nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			res := reg.Resolve(tc.token)

			g.Expect(res.Lookup).To(Equal(tc.lookup), "lookup for %q", tc.token)
			g.Expect(res.Option).To(BeIdenticalTo(tc.option))
			g.Expect(res.Value).To(Equal(tc.value))
			g.Expect(res.HasValue).To(Equal(tc.hasValue))
		})
	}
}

func TestProperty_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("NonPrefixedTokensAreArgumentsVerbatim", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)
			reg := newRegistry(nil)
			reg.AddOption("aaa", 'a', options.Switch)

			token := rapid.StringMatching(`[^-].*`).Draw(t, "token")

			res := reg.Resolve(token)
			g.Expect(res.Lookup).To(Equal(options.LookupArgument))
			g.Expect(res.Value).To(Equal(token))
		})
	})

	t.Run("InlineValueIsEverythingAfterFirstEquals", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)
			name := rapid.StringMatching(`[a-z][a-z0-9-]{0,10}`).Draw(t, "name")
			value := rapid.String().Draw(t, "value")

			reg := newRegistry(nil)
			opt := reg.AddOption(name, 0, options.ValueRequired)

			res := reg.Resolve("--" + name + "=" + value)
			g.Expect(res.Lookup).To(Equal(options.LookupOption))
			g.Expect(res.Option).To(BeIdenticalTo(opt))
			g.Expect(res.Value).To(Equal(value))
			g.Expect(res.HasValue).To(BeTrue())
		})
	})

	t.Run("MultiCharacterShortFormIsNeverAnAlias", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)
			alias := rapid.RuneFrom([]rune("abcdefghijklmnopqrstuvwxyz")).Draw(t, "alias")
			extra := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "extra")

			reg := newRegistry(nil)
			reg.AddOption("long-name", alias, options.Switch)

			g.Expect(reg.Resolve("-" + string(alias) + extra).Lookup).To(Equal(options.LookupUnknown))
		})
	})
}

func newRegistry(errOut *bytes.Buffer) *options.Registry {
	reg := options.NewRegistry()
	if errOut != nil {
		reg.SetErrOutput(errOut)
	} else {
		reg.SetErrOutput(&bytes.Buffer{})
	}

	return reg
}
