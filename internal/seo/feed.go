// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"time"
)

// AtomNamespace is used for the channel's atom:link self reference.
const AtomNamespace = "http://www.w3.org/2005/Atom"

// RSS is an RSS 2.0 document.
type RSS struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	XMLNSAtom string     `xml:"xmlns:atom,attr"`
	Channel   RSSChannel `xml:"channel"`
}

// RSSChannel is the channel header and its items.
type RSSChannel struct {
	Title          XMLText   `xml:"title"`
	Description    XMLText   `xml:"description"`
	Link           XMLText   `xml:"link"`
	AtomLink       AtomLink  `xml:"atom:link"`
	Language       string    `xml:"language,omitempty"`
	Copyright      *XMLText  `xml:"copyright,omitempty"`
	ManagingEditor *XMLText  `xml:"managingEditor,omitempty"`
	WebMaster      *XMLText  `xml:"webMaster,omitempty"`
	Generator      string    `xml:"generator,omitempty"`
	LastBuildDate  string    `xml:"lastBuildDate"`
	TTL            int       `xml:"ttl,omitempty"`
	Items          []RSSItem `xml:"item"`
}

// AtomLink is the <atom:link rel="self"> element.
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem is one feed entry.
type RSSItem struct {
	Title       XMLText   `xml:"title"`
	Description XMLText   `xml:"description"`
	Link        XMLText   `xml:"link"`
	GUID        XMLText   `xml:"guid"`
	PubDate     string    `xml:"pubDate"`
	Author      *XMLText  `xml:"author,omitempty"`
	Categories  []XMLText `xml:"category"`
}

// FeedChannel describes the channel of a feed.
type FeedChannel struct {
	Title       string
	Description string
	Link        string
	SelfURL     string
	Language    string
	Copyright   string
	Editor      string // used for managingEditor and webMaster
	Generator   string
	TTL         int
	BuildDate   time.Time
}

// FeedItem contains data needed to add an item to a feed.
type FeedItem struct {
	Title       string
	Description string
	Link        string // also the guid
	PubDate     time.Time
	Author      string
	Categories  []string
}

// FeedBuilder builds RSS 2.0 XML.
type FeedBuilder struct {
	channel FeedChannel
	items   []RSSItem
}

// NewFeedBuilder creates a new feed builder.
func NewFeedBuilder(channel FeedChannel) *FeedBuilder {
	return &FeedBuilder{
		channel: channel,
		items:   make([]RSSItem, 0),
	}
}

// AddItem appends an item. Items are rendered in insertion order.
func (b *FeedBuilder) AddItem(item FeedItem) {
	b.items = append(b.items, RSSItem{
		Title:       Text(item.Title),
		Description: Text(item.Description),
		Link:        Text(item.Link),
		GUID:        Text(item.Link),
		PubDate:     item.PubDate.UTC().Format(time.RFC1123Z),
		Author:      OptionalText(item.Author),
		Categories:  Texts(item.Categories),
	})
}

// Len returns the number of items added so far.
func (b *FeedBuilder) Len() int {
	return len(b.items)
}

// Build generates the RSS XML.
func (b *FeedBuilder) Build() ([]byte, error) {
	c := b.channel
	buildDate := c.BuildDate
	if buildDate.IsZero() {
		buildDate = time.Now()
	}

	doc := RSS{
		Version:   "2.0",
		XMLNSAtom: AtomNamespace,
		Channel: RSSChannel{
			Title:          Text(c.Title),
			Description:    Text(c.Description),
			Link:           Text(c.Link),
			AtomLink:       AtomLink{Href: c.SelfURL, Rel: "self", Type: "application/rss+xml"},
			Language:       c.Language,
			Copyright:      OptionalText(c.Copyright),
			ManagingEditor: OptionalText(c.Editor),
			WebMaster:      OptionalText(c.Editor),
			Generator:      c.Generator,
			LastBuildDate:  buildDate.UTC().Format(time.RFC1123Z),
			TTL:            c.TTL,
			Items:          b.items,
		},
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
