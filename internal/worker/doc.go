// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package worker holds the job handlers run by the worker process:
// [ThumbnailWorker] consumes models.FileQueue and [OnboardingWorker] consumes
// models.UserQueue.
//
// Handlers return errors wrapped with queue.Permanent for jobs that can never
// succeed, such as a payload without a fileId, so that the queue fails them
// without retrying.
package worker
