package comparison

// viewTemplate takes four arguments: original filename, original pane HTML,
// translated filename, translated pane HTML. Literal percent signs in the
// CSS are doubled because the template goes through fmt.Sprintf.
const viewTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Notes Comparison</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background-color: #f5f5f5;
            height: 100vh;
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
            padding: 15px 20px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        .header h1 {
            font-size: 24px;
            font-weight: 300;
        }
        .controls {
            margin-top: 10px;
            display: flex;
            gap: 10px;
            align-items: center;
        }
        .btn {
            background: rgba(255,255,255,0.2);
            border: 1px solid rgba(255,255,255,0.3);
            color: white;
            padding: 8px 16px;
            border-radius: 5px;
            cursor: pointer;
            font-size: 14px;
        }
        .btn:hover {
            background: rgba(255,255,255,0.3);
        }
        .container {
            height: calc(100vh - 92px);
            background: white;
            display: flex;
        }
        .pane {
            width: 50%%;
            border-right: 2px solid #e0e0e0;
            display: flex;
            flex-direction: column;
        }
        .pane:last-child {
            border-right: none;
        }
        .pane-header {
            background: linear-gradient(to right, #f8f9fa, #e9ecef);
            padding: 12px 20px;
            border-bottom: 1px solid #dee2e6;
            font-weight: 600;
            color: #495057;
            font-size: 14px;
            display: flex;
            justify-content: space-between;
            align-items: center;
        }
        .filename {
            font-family: 'Courier New', monospace;
            background: #e9ecef;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
        }
        .content {
            flex: 1;
            overflow-y: auto;
            padding: 20px;
            background: white;
        }
        .content::-webkit-scrollbar {
            width: 8px;
        }
        .content::-webkit-scrollbar-track {
            background: #f1f1f1;
        }
        .content::-webkit-scrollbar-thumb {
            background: #c1c1c1;
            border-radius: 4px;
        }
        .section {
            padding-bottom: 10px;
        }
        .section h1, .section h2, .section h3 {
            margin-top: 20px;
            margin-bottom: 10px;
            color: #333;
        }
        .section p {
            margin-bottom: 15px;
            line-height: 1.6;
        }
        .section ul, .section ol {
            margin: 15px 0;
            padding-left: 20px;
        }
        .section li {
            margin-bottom: 5px;
        }
        .unpaired {
            border-left: 4px solid #e6a23c;
            padding-left: 12px;
            background: #fdf6ec;
        }
        .placeholder {
            border-left: 4px solid #e0e0e0;
            padding-left: 12px;
            color: #999;
            font-style: italic;
            padding-top: 20px;
            padding-bottom: 20px;
        }
        .marker {
            display: block;
            font-size: 12px;
            font-weight: 600;
            color: #b88230;
            margin-bottom: 6px;
        }
        @media (max-width: 768px) {
            .container {
                flex-direction: column;
            }
            .pane {
                width: 100%%;
                border-right: none;
                border-bottom: 2px solid #e0e0e0;
            }
            .pane:last-child {
                border-bottom: none;
            }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Notes Comparison</h1>
        <div class="controls">
            <button class="btn" id="sync-btn">Sync Scroll: On</button>
            <button class="btn" id="reset-btn">Reset View</button>
        </div>
    </div>

    <div class="container">
        <div class="pane">
            <div class="pane-header">
                <span>Original</span>
                <span class="filename">%s</span>
            </div>
            <div class="content" id="original-content">
%s
            </div>
        </div>
        <div class="pane">
            <div class="pane-header">
                <span>Translated</span>
                <span class="filename">%s</span>
            </div>
            <div class="content" id="translated-content">
%s
            </div>
        </div>
    </div>

    <script>
        var syncEnabled = true;
        var original = document.getElementById('original-content');
        var translated = document.getElementById('translated-content');
        var syncing = false;

        // Aligns panes section-by-section: find the section under the top of
        // the scrolled pane, scroll the other pane so its matching data-idx
        // section sits at the same relative offset.
        function syncFrom(src, dst) {
            if (!syncEnabled || syncing) return;
            syncing = true;
            var srcSections = src.querySelectorAll('.section');
            var current = null;
            for (var i = 0; i < srcSections.length; i++) {
                if (srcSections[i].offsetTop <= src.scrollTop) {
                    current = srcSections[i];
                } else {
                    break;
                }
            }
            if (current) {
                var within = src.scrollTop - current.offsetTop;
                var frac = current.offsetHeight > 0 ? within / current.offsetHeight : 0;
                var idx = current.getAttribute('data-idx');
                var twin = dst.querySelector('.section[data-idx="' + idx + '"]');
                if (twin) {
                    dst.scrollTop = twin.offsetTop + frac * twin.offsetHeight;
                }
            } else {
                var pct = src.scrollTop / (src.scrollHeight - src.clientHeight || 1);
                dst.scrollTop = pct * (dst.scrollHeight - dst.clientHeight);
            }
            requestAnimationFrame(function () { syncing = false; });
        }

        original.addEventListener('scroll', function () { syncFrom(original, translated); });
        translated.addEventListener('scroll', function () { syncFrom(translated, original); });

        document.getElementById('sync-btn').addEventListener('click', function () {
            syncEnabled = !syncEnabled;
            this.textContent = syncEnabled ? 'Sync Scroll: On' : 'Sync Scroll: Off';
        });
        document.getElementById('reset-btn').addEventListener('click', function () {
            original.scrollTop = 0;
            translated.scrollTop = 0;
        });
    </script>
</body>
</html>
`
