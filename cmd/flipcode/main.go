// seehuhn.de/go/flipcode - digit codes that read upside down
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Flipcode prints the digit code of a phrase.  When the printed code is
// turned upside down, it reads as the phrase.
//
// Usage:
//
//	flipcode [flags] word ...
//
// The flags are:
//
//	-set id
//		use the symbol set with the given ID (default "calculator")
//	-assets dir
//		look for symbol sets in dir before using the built-in ones
//	-png file
//		write a picture of the code, upright and turned around
//	-list
//		list the available symbol sets and exit
//	-v
//		print diagnostic messages
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"seehuhn.de/go/flipcode/assets"
	"seehuhn.de/go/flipcode/encode"
	"seehuhn.de/go/flipcode/glyph"
	"seehuhn.de/go/flipcode/preview"
	"seehuhn.de/go/flipcode/resolve"
	"seehuhn.de/go/flipcode/symbols"
)

type options struct {
	set    string
	assets string
	png    string
	list   bool
}

func main() {
	opt := &options{}
	flag.StringVar(&opt.set, "set", assets.DefaultSet, "symbol set to use")
	flag.StringVar(&opt.assets, "assets", "", "directory with additional symbol sets")
	flag.StringVar(&opt.png, "png", "", "write a preview image to this file")
	flag.BoolVar(&opt.list, "list", false, "list the available symbol sets")
	verbose := flag.Bool("v", false, "print diagnostic messages")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	phrase := strings.Join(flag.Args(), " ")
	err := run(opt, phrase, os.Stdout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flipcode:", describe(err))
		os.Exit(1)
	}
}

func run(opt *options, phrase string, out io.Writer, log logrus.FieldLogger) error {
	res := &resolve.Resolver{
		Packaged: assets.Store(),
		Log:      log,
	}
	if opt.assets != "" {
		res.Override = resolve.NewDirStore(opt.assets)
	}

	if opt.list {
		return listSets(res, out)
	}

	sess := resolve.NewSession(res)
	if err := sess.Select(opt.set); err != nil {
		return err
	}
	set := sess.Active()
	if set.Status == symbols.ComingSoon {
		log.WithField("set", set.ID).Warn("symbol set is not finished yet")
	}

	elems, err := sess.Encode(phrase)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, encode.Format(elems))
	log.WithFields(logrus.Fields{
		"set":   set.ID,
		"reads": encode.Letters(encode.Reverse(elems)),
	}).Debug("encoded")

	if opt.png != "" && len(elems) > 0 {
		lookup := func(e encode.Element) *glyph.Record {
			rec, _ := sess.Cache().Glyph(set, e.Char)
			return rec
		}
		return writePreview(opt.png, elems, lookup)
	}
	return nil
}

func listSets(res *resolve.Resolver, out io.Writer) error {
	sets, err := resolve.Discover(res, res)
	if err != nil {
		return err
	}
	for _, s := range sets {
		fmt.Fprintf(out, "%s\t%s\t%s\n", s.ID, s.DisplayName, s.Status)
	}
	return nil
}

// writePreview writes a PNG image showing the code twice: as printed,
// and turned by 180 degrees underneath.
func writePreview(fname string, elems []encode.Element, lookup preview.Lookup) (err error) {
	row := preview.Default.Row(elems, lookup)
	rot := preview.Rotated(row)

	b := row.Bounds()
	gap := preview.Default.Gap
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), 2*b.Dy()+gap))
	draw.Draw(img, img.Bounds(), image.NewUniform(preview.Default.Background), image.Point{}, draw.Src)
	draw.Draw(img, b, row, b.Min, draw.Src)
	draw.Draw(img, b.Add(image.Pt(0, b.Dy()+gap)), rot, b.Min, draw.Src)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// describe returns the message shown to the user for err.
func describe(err error) string {
	var valErr *encode.ValidationError
	var mapErr *encode.MissingMappingError
	var cfgErr *resolve.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return resolve.ConfigurationMessage
	case errors.As(err, &valErr):
		return "invalid input: " + valErr.Error()
	case errors.As(err, &mapErr):
		return "incomplete symbol set: " + mapErr.Error()
	case errors.Is(err, resolve.ErrNoActiveSet):
		return "no symbol set selected"
	default:
		return err.Error()
	}
}
