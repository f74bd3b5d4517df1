package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/soypat/drawbox/gleval"
	"github.com/soypat/geometry/ms2"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// ImageRenderer converts colored 2D SDFs to images.
type ImageRenderer struct {
	conv func(c [3]float32) color.Color
	pos  []ms2.Vec
	col  [][3]float32
	dist []float32
}

// NewImageRenderer instances a new [ImageRenderer]. A nil conversion function
// results in [RGB] conversion of the shaded colors.
func NewImageRenderer(evalBufferSize int, conversion func([3]float32) color.Color) (*ImageRenderer, error) {
	if evalBufferSize <= 64 {
		return nil, errors.New("too small evaluation buffer size")
	}
	if conversion == nil {
		conversion = func(c [3]float32) color.Color { return RGB(c) }
	}
	ir := &ImageRenderer{
		conv: conversion,
		pos:  make([]ms2.Vec, evalBufferSize),
		col:  make([][3]float32, evalBufferSize),
		dist: make([]float32, evalBufferSize),
	}
	return ir, nil
}

// Render maps the SDF's bounds onto img and shades every pixel center. It uses
// userData as an argument to all [gleval.ColorSDF2.EvaluateColor] calls.
func (ir *ImageRenderer) Render(sdf gleval.ColorSDF2, img setImage, userData any) error {
	imgBB := img.Bounds()
	conv := ir.conv
	return ir.renderColumns(sdf.Bounds(), imgBB, func(col int, pos []ms2.Vec) error {
		err := sdf.EvaluateColor(pos, ir.col[:len(pos)], userData)
		if err != nil {
			return err
		}
		for j := range pos {
			img.Set(col+imgBB.Min.X, j+imgBB.Min.Y, conv(ir.col[j]))
		}
		return nil
	})
}

// RenderDistance maps the SDF's bounds onto img and colors every pixel
// center's distance with conv.
func (ir *ImageRenderer) RenderDistance(sdf gleval.SDF2, img setImage, conv func(float32) color.Color, userData any) error {
	imgBB := img.Bounds()
	return ir.renderColumns(sdf.Bounds(), imgBB, func(col int, pos []ms2.Vec) error {
		err := sdf.Evaluate(pos, ir.dist[:len(pos)], userData)
		if err != nil {
			return err
		}
		for j := range pos {
			img.Set(col+imgBB.Min.X, j+imgBB.Min.Y, conv(ir.dist[j]))
		}
		return nil
	})
}

// renderColumns maps bb onto imgBB and calls column once per image column
// with the sample positions of its pixel centers, top to bottom.
func (ir *ImageRenderer) renderColumns(bb ms2.Box, imgBB image.Rectangle, column func(col int, pos []ms2.Vec) error) error {
	dxi := imgBB.Dx()
	dyi := imgBB.Dy()
	if len(ir.pos) < dyi {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of image columns (%d)", len(ir.pos), dyi)
	}
	sz := bb.Size()
	dx := sz.X / float32(dxi)
	dy := sz.Y / float32(dyi)
	bb.Min = ms2.Add(bb.Min, ms2.Vec{X: dx / 2, Y: dy / 2}) // Sample pixel centers.
	pos := ir.pos[:dyi]
	for i := 0; i < dxi; i++ {
		x := float32(i)*dx + bb.Min.X
		for j := range pos {
			pos[j] = ms2.Vec{X: x, Y: float32(j)*dy + bb.Min.Y}
		}
		err := column(i, pos)
		if err != nil {
			return err
		}
	}
	return nil
}

// WritePNG renders sdf at one pixel per unit of its bounds, draws labels over it
// when a is not nil and encodes the result as PNG to w.
func WritePNG(w io.Writer, sdf gleval.ColorSDF2, a *Annotator, labels []Label) error {
	img, ir, err := newExportImage(sdf.Bounds().Size())
	if err != nil {
		return err
	}
	err = ir.Render(sdf, img, nil)
	if err != nil {
		return err
	}
	if a != nil {
		a.Annotate(img, labels)
	}
	return png.Encode(w, img)
}

// WriteDistancePNG renders the distances of sdf colored by conv at one pixel
// per unit of its bounds and encodes the result as PNG to w.
func WriteDistancePNG(w io.Writer, sdf gleval.SDF2, conv func(float32) color.Color) error {
	img, ir, err := newExportImage(sdf.Bounds().Size())
	if err != nil {
		return err
	}
	err = ir.RenderDistance(sdf, img, conv, nil)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func newExportImage(sz ms2.Vec) (*image.RGBA, *ImageRenderer, error) {
	width, height := int(sz.X+0.5), int(sz.Y+0.5)
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("empty image bounds %v", sz)
	}
	ir, err := NewImageRenderer(max(height, 65), nil)
	if err != nil {
		return nil, nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), ir, nil
}
