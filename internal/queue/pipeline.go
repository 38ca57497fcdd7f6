package queue

import (
	"context"

	"github.com/rs/zerolog/log"

	"catalogpix/internal/catalog"
	"catalogpix/internal/imagegen"
)

// processItem drives one item to a terminal state: mark in-flight, generate,
// upload, record the outcome. Failures are recorded on the item and never
// escape; exactly one terminal transition happens per invocation.
func (s *Scheduler) processItem(ctx context.Context, id int) {
	item, ok := s.list.Get(id)
	if !ok {
		return
	}

	_ = s.list.Update(id, func(it catalog.Item) catalog.Item {
		it.Status = catalog.StatusInFlight
		it.Error = ""
		return it
	})
	s.emitItem(id)

	// Read the current credentials per call; losing them mid-run fails this
	// item only and the loop moves on.
	creds := s.credentials()
	if !creds.Configured() {
		log.Warn().Int("id", id).Msg("storage credentials missing, skipping item")
		s.failItem(id, catalog.FailureUpload)
		return
	}

	img, err := s.generator.Generate(ctx, item.Prompt)
	if err != nil {
		failure := imagegen.Classify(err)
		if failure == catalog.FailureInvalidAPIKey {
			s.authorizer.Invalidate()
		}
		log.Error().Err(err).Int("id", id).Str("name", item.Name).
			Str("failure", string(failure)).Msg("image generation failed")
		s.failItem(id, failure)
		return
	}

	url, err := s.uploader.Upload(ctx, img.Data, img.MIMEType, creds)
	if err != nil {
		// The generated image is discarded; a retry regenerates from scratch.
		log.Error().Err(err).Int("id", id).Str("name", item.Name).Msg("upload failed")
		s.failItem(id, catalog.FailureUpload)
		return
	}

	_ = s.list.Update(id, func(it catalog.Item) catalog.Item {
		it.URL = url
		it.Status = catalog.StatusSucceeded
		return it
	})
	log.Info().Int("id", id).Str("name", item.Name).Str("url", url).Msg("item processed")
	s.emitItem(id)
}

func (s *Scheduler) failItem(id int, failure catalog.Failure) {
	_ = s.list.Update(id, func(it catalog.Item) catalog.Item {
		it.Status = catalog.StatusFailed
		it.Error = failure
		return it
	})
	s.emitItem(id)
}

func (s *Scheduler) emitItem(id int) {
	if item, ok := s.list.Get(id); ok {
		s.emit(Event{Kind: EventItemUpdated, Item: item})
	}
}
